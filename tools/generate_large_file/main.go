// Large Source File Generator
//
// This tool generates a large Clojure-dialect source file for performance
// testing and profiling. It mixes every reader form the reclassifier knows
// about so that all of its rules are exercised.
//
// Usage:
//
//	go run main.go > large.clj
//	go run main.go 20000000 > large.clj  # Specify target size in bytes
//	lumen-kit --telemetry highlight --color never large.clj > /dev/null
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	namespaces = []string{
		"clojure.string", "clojure.set", "clojure.walk",
		"clojure.java.io", "clojure.edn", "clojure.core.async",
	}

	aliases = []string{"str", "set", "walk", "io", "edn", "async"}

	fns = []string{
		"map", "filter", "reduce", "assoc", "update-in", "get-in",
		"conj", "into", "merge", "select-keys", "mapcat", "partition",
		"str", "println", "inc", "dec", "some->", "cond->",
	}

	keywords = []string{
		"name", "id", "title", "status", "created-at", "tags",
		"user/email", "order/total", "db/id",
	}

	words = []string{
		"alpha", "beta", "gamma", "delta", "items", "acc", "x", "y",
		"config", "state", "result", "opts", "ctx", "row",
	}

	readers = []string{"inst", "uuid", "js", "my/tag"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	header := generateHeader()
	fmt.Print(header)
	bytesWritten := len(header)
	formCount := 0

	for bytesWritten < targetSize {
		var form string
		switch rand.Intn(10) {
		case 0, 1, 2: // 30% - Function definition
			form = generateDefn(formCount)
		case 3, 4: // 20% - Map literal with keywords
			form = generateDef(formCount)
		case 5: // 10% - Metadata and type hints
			form = generateMetadata(formCount)
		case 6: // 10% - Reader macros and data readers
			form = generateReaderForms(formCount)
		case 7: // 10% - Quoting and syntax quote
			form = generateMacro(formCount)
		case 8: // 10% - Numbers and literals
			form = generateLiterals(formCount)
		case 9: // 10% - Namespaced keyword maps
			form = generateNamespacedMap(formCount)
		}
		fmt.Print(form)
		bytesWritten += len(form)
		formCount++
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d top-level forms\n", bytesWritten, formCount)
}

func generateHeader() string {
	var b strings.Builder
	b.WriteString(";; Large source file for performance testing\n")
	fmt.Fprintf(&b, ";; Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("(ns bench.generated\n  (:require")
	for i, ns := range namespaces {
		fmt.Fprintf(&b, "\n    [%s :as %s]", ns, aliases[i])
	}
	b.WriteString("))\n\n")
	return b.String()
}

func generateDefn(n int) string {
	return fmt.Sprintf(`(defn %s-%d
  "Computes the %s of %s."
  [%s %s]
  (let [%s (%s inc %s)]
    (%s/join ", " (%s %s %s))))

`, pick(words), n, pick(words), pick(words), pick(words), pick(words),
		pick(words), pick(fns), pick(words),
		pick(aliases), pick(fns), pick(words), pick(words))
}

func generateDef(n int) string {
	return fmt.Sprintf(`(def %s-%d
  {:%s %q
   :%s [%d %d %d]
   :%s #{:%s :%s}
   :%s nil})

`, pick(words), n, pick(keywords), pick(words), pick(keywords),
		rand.Intn(100), rand.Intn(100), rand.Intn(100),
		pick(keywords), pick(keywords), pick(keywords), pick(keywords))
}

func generateMetadata(n int) string {
	return fmt.Sprintf(`(defn ^:private ^String %s-%d
  ^{:doc "Hinted." :added "1.%d"}
  [^long %s ^%s %s]
  (.toUpperCase (str %s %s)))

`, pick(words), n, rand.Intn(12), pick(words), pick([]string{"String", "java.util.Map"}),
		pick(words), pick(words), pick(words))
}

func generateReaderForms(n int) string {
	return fmt.Sprintf(`(def events-%d
  [#%s "2024-0%d-1%d"
   #(%s %% 1)
   #_ignored
   #'%s/%s
   #"[a-z]+\d*"
   #?(:clj %s :cljs %s)
   #?@(:clj [1 2])
   @%s
   #=(+ 1 2)])

`, n, pick(readers), rand.Intn(9)+1, rand.Intn(9), pick(fns),
		pick(aliases), pick(fns), pick(words), pick(words), pick(words))
}

func generateMacro(n int) string {
	return fmt.Sprintf("(defmacro with-%s-%d\n  [& body]\n  `(let [~'%s ~(first body)\n         %s# 'sym]\n     ~@body))\n\n",
		pick(words), n, pick(words), pick(words))
}

func generateLiterals(n int) string {
	return fmt.Sprintf(`(def numbers-%d
  [%d -%d %d.%d %de%d %d/%d 0x%X %dr%d %dN %dM
   \a \newline é true false nil ##Inf])

`, n, rand.Intn(1000), rand.Intn(1000), rand.Intn(100), rand.Intn(100), rand.Intn(9)+1, rand.Intn(9),
		rand.Intn(9)+1, rand.Intn(9)+1, rand.Intn(4096), rand.Intn(30)+2, rand.Intn(2),
		rand.Intn(1000), rand.Intn(1000))
}

func generateNamespacedMap(n int) string {
	return fmt.Sprintf(`(def entity-%d
  #:%s{:id %d :%s %q}
  ::local-%d
  (::%s/%s config))

`, n, pick(words), rand.Intn(10000), pick(words), pick(words), n, pick(aliases), pick(words))
}

func pick(from []string) string {
	return from[rand.Intn(len(from))]
}
