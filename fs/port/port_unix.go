// +build darwin linux

/*
 * port_unix.go
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

// Package port wraps the POSIX primitives behind the wrapper file system.
// Every wrapper returns the bridge calling convention directly: 0 (or a
// transferred byte count) on success, the negated errno on failure.

func Statfs(path string, stat *fuse.Statfs_t) (errc int) {
	gost := syscall.Statfs_t{}
	errc = Errno(syscall.Statfs(path, &gost))
	copyFusestatfsFromGostatfs(stat, &gost)
	return
}

func Mkdir(path string, mode uint32) (errc int) {
	return Errno(syscall.Mkdir(path, mode))
}

func Unlink(path string) (errc int) {
	return Errno(syscall.Unlink(path))
}

func Rmdir(path string) (errc int) {
	return Errno(syscall.Rmdir(path))
}

func Link(oldpath string, newpath string) (errc int) {
	return Errno(syscall.Link(oldpath, newpath))
}

func Symlink(target string, newpath string) (errc int) {
	return Errno(syscall.Symlink(target, newpath))
}

func Readlink(path string) (errc int, target string) {
	buf := [4096]byte{}
	n, e := syscall.Readlink(path, buf[:])
	if nil != e {
		return Errno(e), ""
	}
	return 0, string(buf[:n])
}

func Rename(oldpath string, newpath string) (errc int) {
	return Errno(syscall.Rename(oldpath, newpath))
}

func Chmod(path string, mode uint32) (errc int) {
	return Errno(syscall.Chmod(path, mode))
}

func Lchown(path string, uid int, gid int) (errc int) {
	return Errno(syscall.Lchown(path, uid, gid))
}

func UtimesNano(path string, tmsp []fuse.Timespec) (errc int) {
	gots := [2]syscall.Timespec{}
	gots[0].Sec, gots[0].Nsec = tmsp[0].Sec, tmsp[0].Nsec
	gots[1].Sec, gots[1].Nsec = tmsp[1].Sec, tmsp[1].Nsec
	return Errno(syscall.UtimesNano(path, gots[:]))
}

func Access(path string, mask uint32) (errc int) {
	return Errno(syscall.Access(path, mask))
}

func Open(path string, flags int, mode uint32) (errc int, fd int) {
	fd, e := syscall.Open(path, flags, mode)
	if nil != e {
		return Errno(e), -1
	}
	return 0, fd
}

func Lstat(path string, stat *fuse.Stat_t) (errc int) {
	gost := syscall.Stat_t{}
	errc = Errno(syscall.Lstat(path, &gost))
	copyFusestatFromGostat(stat, &gost)
	return
}

func Fstat(fd int, stat *fuse.Stat_t) (errc int) {
	gost := syscall.Stat_t{}
	errc = Errno(syscall.Fstat(fd, &gost))
	copyFusestatFromGostat(stat, &gost)
	return
}

func Truncate(path string, length int64) (errc int) {
	return Errno(syscall.Truncate(path, length))
}

func Ftruncate(fd int, length int64) (errc int) {
	return Errno(syscall.Ftruncate(fd, length))
}

func Pread(fd int, p []byte, offset int64) (n int) {
	n, e := syscall.Pread(fd, p, offset)
	if nil != e {
		return Errno(e)
	}

	return n
}

func Pwrite(fd int, p []byte, offset int64) (n int) {
	n, e := syscall.Pwrite(fd, p, offset)
	if nil != e {
		return Errno(e)
	}

	return n
}

func Close(fd int) (errc int) {
	return Errno(syscall.Close(fd))
}

func Fsync(fd int) (errc int) {
	return Errno(syscall.Fsync(fd))
}

func Opendir(path string) (errc int, fd int) {
	fd, e := syscall.Open(path, syscall.O_RDONLY|syscall.O_DIRECTORY, 0)
	if nil != e {
		return Errno(e), -1
	}

	return 0, fd
}

// Rewinddir repositions the directory stream at its start, so that a
// restarted enumeration sees all entries again.
func Rewinddir(fd int) (errc int) {
	_, e := syscall.Seek(fd, 0, 0)
	return Errno(e)
}

// Readdir emits every remaining name in the directory stream, excluding
// "." and "..". Enumeration stops early when fill returns false.
func Readdir(fd int, fill func(name string, stat *fuse.Stat_t, ofst int64) bool) (errc int) {
	buf := [8 * 1024]byte{}
	ptr := 0
	end := 0

	for {
		if end <= ptr {
			ptr = 0
			var e error
			end, e = syscall.ReadDirent(fd, buf[:])
			if nil != e {
				return Errno(e)
			}
			if 0 >= end {
				return 0
			}
		}

		n, _, names := syscall.ParseDirent(buf[ptr:end], -1, nil)
		ptr += n

		for _, name := range names {
			if !fill(name, nil, 0) {
				return 0
			}
		}
	}
}

func Closedir(fd int) (errc int) {
	return Errno(syscall.Close(fd))
}

func Umask(mask int) (oldmask int) {
	return syscall.Umask(mask)
}

// Errno normalizes the outcome of an underlying call: nil maps to 0 and a
// platform errno maps to its negation, the magnitude untouched. Errors
// that carry no errno (there should be none on this path) map to -EIO.
func Errno(err error) int {
	if nil == err {
		return 0
	}

	if e, ok := err.(syscall.Errno); ok {
		return -int(e)
	}

	return -fuse.EIO
}
