// +build darwin linux

/*
 * main.go
 *
 * Copyright 2010-2013 Lei Xu <eddyxu@gmail.com>
 */
/*
 * This file is part of Fuseutils.
 *
 * It is licensed under the Apache License, Version 2.0. The full license
 * text can be found in the License.txt file at the root of this project.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/billziss-gh/cgofuse/fuse"
	libtrace "github.com/billziss-gh/golib/trace"

	"github.com/eddyxu/fuseutils/fs/port"
	"github.com/eddyxu/fuseutils/fs/wrapfs"
)

var (
	MyVersion     = "DEVVER"
	MyProductName = "wrapperfs"
	MyDescription = "pass-through file system on top of an existing file system"
)

var progname = filepath.Base(os.Args[0])

func warn(format string, a ...interface{}) {
	format = "%s: " + format + "\n"
	a = append([]interface{}{progname}, a...)
	fmt.Fprintf(os.Stderr, format, a...)
}

type mntopt []string

// String implements flag.Value.String.
func (mntopt *mntopt) String() string {
	return ""
}

// Set implements flag.Value.Set.
func (mntopt *mntopt) Set(s string) error {
	*mntopt = append(*mntopt, s)
	return nil
}

func run() int {
	printver := false
	printhelp := false
	debug := false
	basedir := ""
	mntopt := mntopt{}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] mountpoint\n\n", progname)
		flag.PrintDefaults()
	}

	flag.BoolVar(&printver, "version", printver, "print version information")
	flag.BoolVar(&printhelp, "h", printhelp, "display this help")
	flag.BoolVar(&printhelp, "help", printhelp, "display this help")
	flag.BoolVar(&debug, "d", debug, "run in debug mode")
	flag.BoolVar(&debug, "debug", debug, "run in debug mode")
	flag.StringVar(&basedir, "b", basedir, "mount target `directory`")
	flag.StringVar(&basedir, "basedir", basedir, "mount target `directory`")
	flag.Var(&mntopt, "o", "FUSE mount `options`")

	flag.Parse()

	if printhelp {
		flag.Usage()
		return 1
	}
	if printver {
		fmt.Fprintf(os.Stderr, "%s - %s - version %s\n",
			MyProductName, MyDescription, MyVersion)
		return 1
	}
	if 1 != flag.NArg() {
		flag.Usage()
		return 2
	}
	mntpnt := flag.Arg(0)

	if "" == basedir {
		warn("must specify base directory (--basedir)")
		return 1
	}
	abs, err := filepath.Abs(basedir)
	if nil != err {
		warn("base directory: %v", err)
		return 1
	}
	basedir = abs
	info, err := os.Stat(basedir)
	if nil != err {
		warn("base directory: %v", err)
		return 1
	}
	if !info.IsDir() {
		warn("base directory: %s: not a directory", basedir)
		return 1
	}

	if debug {
		libtrace.Verbose = true
		libtrace.Pattern = "*,github.com/eddyxu/fuseutils/*"
	}

	args := []string{}
	for _, m := range mntopt {
		for _, s := range strings.Split(m, ",") {
			args = append(args, "-o"+s)
		}
	}
	if debug {
		args = append(args, "-d")
	}

	warn("mount %s onto %s", basedir, mntpnt)

	port.Umask(0)

	host := fuse.NewFileSystemHost(wrapfs.New(wrapfs.Config{Basedir: basedir}))
	if !host.Mount(mntpnt, args) {
		return 1
	}
	return 0
}

func main() {
	ec := run()
	os.Exit(ec)
}
