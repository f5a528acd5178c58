// Copyright 2020-2026 The memarena Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build debug

// Package dbg includes debugging helpers shared by the allocator packages.
package dbg

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/timandy/routine"
)

// Enabled is true when the module is built with the debug tag. This build
// also makes Assert live, turning on internal consistency checks (e.g. an
// Alloc on a destroyed page) that are no-ops in production builds.
const Enabled = true

var (
	filter *regexp.Regexp
	out    = os.Stderr
)

func init() {
	flag.Func("memarena.filter", "regexp to filter debug logs by package", SetFilter)
}

// SetFilter installs (or clears, given "") the regexp used to restrict Log
// output to matching caller filenames. Also reachable via the
// -memarena.filter flag; memarena.Init passes config.Config.DebugFilter to
// it so programs that prefer a config file over a flag still get filtering.
func SetFilter(pattern string) error {
	if pattern == "" {
		filter = nil
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	filter = re
	return nil
}

// Log prints debugging information to stderr, tagged with the calling
// goroutine id and the caller's package/file/line.
//
// context is an optional {format, args...} pair printed before operation,
// for grouping related log lines (e.g. identifying which arena an alloc
// belongs to).
func Log(context []any, operation string, format string, args ...any) {
	_, file, line, ok := runtime.Caller(1)
	if ok {
		file = file[strings.LastIndex(file, "/")+1:]
	}

	if filter != nil && !filter.MatchString(file) {
		return
	}

	buf := new(strings.Builder)
	fmt.Fprintf(buf, "%s:%d [g%04d]", file, line, routine.Goid())
	if len(context) >= 1 {
		fmt.Fprintf(buf, " "+context[0].(string), context[1:]...)
	}
	fmt.Fprintf(buf, " %s: ", operation)
	fmt.Fprintf(buf, format, args...)
	fmt.Fprintln(out)
	fmt.Fprint(out, buf.String())
	fmt.Fprintln(out)
}

// Warn prints a diagnostic that is not a hard error, such as an out-of-order
// frame end.
func Warn(format string, args ...any) {
	fmt.Fprintf(out, "memarena: warning: "+format+"\n", args...)
}

// Assert panics with a formatted message if cond is false. The non-debug
// build's Assert is a no-op, so it never fires in production builds.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("memarena: internal assertion failed: "+format, args...))
	}
}
