// +build darwin linux

/*
 * resolve.go
 *
 * Copyright 2010-2013 Lei Xu <eddyxu@gmail.com>
 */
/*
 * This file is part of Fuseutils.
 *
 * It is licensed under the Apache License, Version 2.0. The full license
 * text can be found in the License.txt file at the root of this project.
 */

package wrapfs

import (
	"strings"

	"github.com/billziss-gh/cgofuse/fuse"
)

// DefaultMaxpath bounds the length of a resolved path when Config.Maxpath
// is left zero.
const DefaultMaxpath = 4096

// resolve maps a virtual path to the corresponding path under the base
// directory. The mapping is literal concatenation: no cleaning, no symlink
// chasing; the bridge hands us canonical paths and the underlying file
// system keeps them that way. An overlong result is rejected outright,
// never truncated.
func (self *Wrapfs) resolve(path string) (errc int, abspath string) {
	if len(self.basedir)+len(path) > self.maxpath {
		return -fuse.ENAMETOOLONG, ""
	}
	return 0, self.basedir + path
}

// resolveTarget maps a symlink target. FUSE passes an out-of-partition
// target as an absolute path and an in-partition target as a path relative
// to the mount root; the former goes through verbatim, the latter is
// mapped like any other virtual path.
func (self *Wrapfs) resolveTarget(target string) (errc int, abstarget string) {
	if strings.HasPrefix(target, "/") {
		return 0, target
	}
	return self.resolve(target)
}
