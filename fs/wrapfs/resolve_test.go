// +build darwin linux

/*
 * resolve_test.go
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
	"testing"

	"github.com/billziss-gh/cgofuse/fuse"
)

func TestResolve(t *testing.T) {
	fs := New(Config{Basedir: "/srv/data"})

	errc, abspath := fs.resolve("/a/b.txt")
	if 0 != errc {
		t.Errorf("resolve: errc %v", errc)
	}
	if "/srv/data/a/b.txt" != abspath {
		t.Errorf("resolve: abspath %q", abspath)
	}

	errc, abspath = fs.resolve("/")
	if 0 != errc || "/srv/data/" != abspath {
		t.Errorf("resolve: errc %v abspath %q", errc, abspath)
	}
}

func TestResolveOverlong(t *testing.T) {
	fs := New(Config{Basedir: "/base", Maxpath: 16})

	// len("/base") + len("/0123456789") == 16: at the bound, accepted
	errc, _ := fs.resolve("/0123456789")
	if 0 != errc {
		t.Errorf("resolve at bound: errc %v", errc)
	}

	errc, abspath := fs.resolve("/01234567890")
	if -fuse.ENAMETOOLONG != errc {
		t.Errorf("resolve above bound: errc %v", errc)
	}
	if "" != abspath {
		t.Errorf("resolve above bound: abspath %q", abspath)
	}
}

func TestResolveTarget(t *testing.T) {
	fs := New(Config{Basedir: "/srv/data"})

	errc, target := fs.resolveTarget("/etc/hosts")
	if 0 != errc || "/etc/hosts" != target {
		t.Errorf("absolute target: errc %v target %q", errc, target)
	}

	// relative targets concatenate verbatim, same as any virtual path
	errc, target = fs.resolveTarget("rel/file")
	if 0 != errc || "/srv/data"+"rel/file" != target {
		t.Errorf("relative target: errc %v target %q", errc, target)
	}
}
