// +build darwin linux

/*
 * wrapfs.go
 *
 * Copyright 2010-2013 Lei Xu <eddyxu@gmail.com>
 */
/*
 * This file is part of Fuseutils.
 *
 * It is licensed under the Apache License, Version 2.0. The full license
 * text can be found in the License.txt file at the root of this project.
 */

// Package wrapfs implements a pass-through file system: every operation
// received from the FUSE bridge is redirected to the corresponding path
// under a base directory on an already mounted file system. It carries no
// state of its own beyond the open handle table; the underlying file
// system remains the source of truth.
package wrapfs

import (
	"sync"
	"time"

	"github.com/billziss-gh/cgofuse/fuse"
	libtrace "github.com/billziss-gh/golib/trace"

	"github.com/eddyxu/fuseutils/fs/port"
)

// Config is the immutable mount configuration. Basedir must name an
// existing, accessible directory as an absolute path; callers validate it
// before the bridge starts serving requests.
type Config struct {
	Basedir string
	Maxpath int // maximum resolved path length; 0 means DefaultMaxpath
}

// Wrapfs redirects every file system operation below the base directory.
// Open files are tracked in openmap under monotonically allocated handles;
// a released handle is deleted and never reallocated, so use after release
// reports EBADF instead of touching a stranger's descriptor.
type Wrapfs struct {
	fuse.FileSystemBase
	basedir string
	maxpath int
	lock    sync.RWMutex
	fh      uint64
	openmap map[uint64]int
}

func New(c Config) *Wrapfs {
	maxpath := c.Maxpath
	if 0 >= maxpath {
		maxpath = DefaultMaxpath
	}
	return &Wrapfs{
		basedir: c.Basedir,
		maxpath: maxpath,
		openmap: make(map[uint64]int),
	}
}

func (self *Wrapfs) newfh(fd int) (fh uint64) {
	self.lock.Lock()
	fh = self.fh
	self.openmap[fh] = fd
	self.fh++
	self.lock.Unlock()
	return
}

func (self *Wrapfs) getfd(fh uint64) (fd int, ok bool) {
	self.lock.RLock()
	fd, ok = self.openmap[fh]
	self.lock.RUnlock()
	return
}

func (self *Wrapfs) delfh(fh uint64) (fd int, ok bool) {
	self.lock.Lock()
	fd, ok = self.openmap[fh]
	if ok {
		delete(self.openmap, fh)
	}
	self.lock.Unlock()
	return
}

func (self *Wrapfs) Statfs(path string, stat *fuse.Statfs_t) (errc int) {
	defer trace(path)(&errc, stat)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Statfs(abspath, stat)
}

func (self *Wrapfs) Mkdir(path string, mode uint32) (errc int) {
	defer trace(path, mode)(&errc)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Mkdir(abspath, mode)
}

func (self *Wrapfs) Unlink(path string) (errc int) {
	defer trace(path)(&errc)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Unlink(abspath)
}

func (self *Wrapfs) Rmdir(path string) (errc int) {
	defer trace(path)(&errc)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Rmdir(abspath)
}

func (self *Wrapfs) Link(oldpath string, newpath string) (errc int) {
	defer trace(oldpath, newpath)(&errc)

	errc, absoldpath := self.resolve(oldpath)
	if 0 != errc {
		return
	}
	errc, absnewpath := self.resolve(newpath)
	if 0 != errc {
		return
	}
	return port.Link(absoldpath, absnewpath)
}

func (self *Wrapfs) Symlink(target string, newpath string) (errc int) {
	defer trace(target, newpath)(&errc)

	errc, abstarget := self.resolveTarget(target)
	if 0 != errc {
		return
	}
	errc, absnewpath := self.resolve(newpath)
	if 0 != errc {
		return
	}
	return port.Symlink(abstarget, absnewpath)
}

func (self *Wrapfs) Readlink(path string) (errc int, target string) {
	defer trace(path)(&errc, &target)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return errc, ""
	}
	return port.Readlink(abspath)
}

func (self *Wrapfs) Rename(oldpath string, newpath string) (errc int) {
	defer trace(oldpath, newpath)(&errc)

	errc, absoldpath := self.resolve(oldpath)
	if 0 != errc {
		return
	}
	errc, absnewpath := self.resolve(newpath)
	if 0 != errc {
		return
	}
	return port.Rename(absoldpath, absnewpath)
}

func (self *Wrapfs) Chmod(path string, mode uint32) (errc int) {
	defer trace(path, mode)(&errc)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Chmod(abspath, mode)
}

func (self *Wrapfs) Chown(path string, uid uint32, gid uint32) (errc int) {
	defer trace(path, uid, gid)(&errc)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Lchown(abspath, int(uid), int(gid))
}

func (self *Wrapfs) Utimens(path string, tmsp []fuse.Timespec) (errc int) {
	defer trace(path, tmsp)(&errc)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	if nil == tmsp {
		now := fuse.NewTimespec(time.Now())
		tmsp = []fuse.Timespec{now, now}
	}
	return port.UtimesNano(abspath, tmsp)
}

func (self *Wrapfs) Access(path string, mask uint32) (errc int) {
	defer trace(path, mask)(&errc)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Access(abspath, mask)
}

func (self *Wrapfs) Create(path string, flags int, mode uint32) (errc int, fh uint64) {
	defer trace(path, flags, mode)(&errc, &fh)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return errc, ^uint64(0)
	}
	errc, fd := port.Open(abspath, flags, mode)
	if 0 != errc {
		return errc, ^uint64(0)
	}
	return 0, self.newfh(fd)
}

func (self *Wrapfs) Open(path string, flags int) (errc int, fh uint64) {
	defer trace(path, flags)(&errc, &fh)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return errc, ^uint64(0)
	}
	errc, fd := port.Open(abspath, flags, 0)
	if 0 != errc {
		return errc, ^uint64(0)
	}
	return 0, self.newfh(fd)
}

func (self *Wrapfs) Getattr(path string, stat *fuse.Stat_t, fh uint64) (errc int) {
	defer trace(path, fh)(&errc, stat)

	if ^uint64(0) != fh {
		fd, ok := self.getfd(fh)
		if !ok {
			return -fuse.EBADF
		}
		return port.Fstat(fd, stat)
	}
	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Lstat(abspath, stat)
}

func (self *Wrapfs) Truncate(path string, size int64, fh uint64) (errc int) {
	defer trace(path, size, fh)(&errc)

	if ^uint64(0) != fh {
		fd, ok := self.getfd(fh)
		if !ok {
			return -fuse.EBADF
		}
		return port.Ftruncate(fd, size)
	}
	errc, abspath := self.resolve(path)
	if 0 != errc {
		return
	}
	return port.Truncate(abspath, size)
}

func (self *Wrapfs) Read(path string, buff []byte, ofst int64, fh uint64) (n int) {
	defer trace(path, ofst, fh)(&n)

	fd, ok := self.getfd(fh)
	if !ok {
		return -fuse.EBADF
	}
	return port.Pread(fd, buff, ofst)
}

func (self *Wrapfs) Write(path string, buff []byte, ofst int64, fh uint64) (n int) {
	defer trace(path, ofst, fh)(&n)

	fd, ok := self.getfd(fh)
	if !ok {
		return -fuse.EBADF
	}
	return port.Pwrite(fd, buff, ofst)
}

func (self *Wrapfs) Release(path string, fh uint64) (errc int) {
	defer trace(path, fh)(&errc)

	fd, ok := self.delfh(fh)
	if !ok {
		return -fuse.EBADF
	}
	return port.Close(fd)
}

func (self *Wrapfs) Fsync(path string, datasync bool, fh uint64) (errc int) {
	defer trace(path, datasync, fh)(&errc)

	fd, ok := self.getfd(fh)
	if !ok {
		return -fuse.EBADF
	}
	return port.Fsync(fd)
}

func (self *Wrapfs) Opendir(path string) (errc int, fh uint64) {
	defer trace(path)(&errc, &fh)

	errc, abspath := self.resolve(path)
	if 0 != errc {
		return errc, ^uint64(0)
	}
	errc, fd := port.Opendir(abspath)
	if 0 != errc {
		return errc, ^uint64(0)
	}
	return 0, self.newfh(fd)
}

func (self *Wrapfs) Readdir(path string,
	fill func(name string, stat *fuse.Stat_t, ofst int64) bool,
	ofst int64,
	fh uint64) (errc int) {
	defer trace(path, ofst, fh)(&errc)

	fd, ok := self.getfd(fh)
	if !ok {
		return -fuse.EBADF
	}
	if 0 == ofst {
		if errc = port.Rewinddir(fd); 0 != errc {
			return
		}
	}
	fill(".", nil, 0)
	fill("..", nil, 0)
	return port.Readdir(fd, fill)
}

func (self *Wrapfs) Releasedir(path string, fh uint64) (errc int) {
	defer trace(path, fh)(&errc)

	fd, ok := self.delfh(fh)
	if !ok {
		return -fuse.EBADF
	}
	return port.Closedir(fd)
}

func trace(vals ...interface{}) func(vals ...interface{}) {
	return libtrace.Trace(1, "", vals...)
}
