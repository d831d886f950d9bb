// +build darwin

/*
 * port_darwin.go
 *
 * Copyright 2010-2013 Lei Xu <eddyxu@gmail.com>
 */
/*
 * This file is part of Fuseutils.
 *
 * It is licensed under the Apache License, Version 2.0. The full license
 * text can be found in the License.txt file at the root of this project.
 */

package port

import (
	"syscall"

	"github.com/billziss-gh/cgofuse/fuse"
)

func copyFusestatFromGostat(stat *fuse.Stat_t, gost *syscall.Stat_t) {
	*stat = fuse.Stat_t{
		Dev:     uint64(gost.Dev),
		Ino:     uint64(gost.Ino),
		Mode:    uint32(gost.Mode),
		Nlink:   uint32(gost.Nlink),
		Uid:     uint32(gost.Uid),
		Gid:     uint32(gost.Gid),
		Rdev:    uint64(gost.Rdev),
		Size:    int64(gost.Size),
		Atim: fuse.Timespec{
			Sec: int64(gost.Atimespec.Sec), Nsec: int64(gost.Atimespec.Nsec)},
		Mtim: fuse.Timespec{
			Sec: int64(gost.Mtimespec.Sec), Nsec: int64(gost.Mtimespec.Nsec)},
		Ctim: fuse.Timespec{
			Sec: int64(gost.Ctimespec.Sec), Nsec: int64(gost.Ctimespec.Nsec)},
		Blksize: int64(gost.Blksize),
		Blocks:  int64(gost.Blocks),
		Birthtim: fuse.Timespec{
			Sec: int64(gost.Birthtimespec.Sec), Nsec: int64(gost.Birthtimespec.Nsec)},
	}
}

func copyFusestatfsFromGostatfs(stat *fuse.Statfs_t, gost *syscall.Statfs_t) {
	*stat = fuse.Statfs_t{
		Bsize:   uint64(gost.Bsize),
		Frsize:  uint64(gost.Bsize),
		Blocks:  uint64(gost.Blocks),
		Bfree:   uint64(gost.Bfree),
		Bavail:  uint64(gost.Bavail),
		Files:   uint64(gost.Files),
		Ffree:   uint64(gost.Ffree),
		Favail:  uint64(gost.Ffree),
		Namemax: 255,
	}
}
