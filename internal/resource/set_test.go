package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet(t *testing.T) *Set {
	t.Helper()

	s := NewSet()
	s.Include("rpcbind")

	pkg := NewPackage("ypbind", "installed")

	exec := NewExec("ypdomainname", "ypdomainname example.com", []string{"/bin"})
	exec.RefreshOnly = true
	exec.Notify = []Ref{ServiceRef("nis_service")}

	conf := NewFile("/etc/yp.conf", "domain example.com broadcast\n", "0644")
	conf.Require = []Ref{PackageRef("ypbind")}
	conf.Notify = []Ref{ExecRef("ypdomainname")}

	svc := NewService("nis_service", "ypbind", "running", true)
	svc.Require = []Ref{ClassRef("rpcbind")}

	require.NoError(t, s.Add(pkg, exec, conf, svc))
	return s
}

func TestSetAddAndLookup(t *testing.T) {
	s := sampleSet(t)

	assert.Equal(t, 4, s.Len())
	r, ok := s.Lookup(FileRef("/etc/yp.conf"))
	require.True(t, ok)
	assert.Equal(t, "0644", r.(*File).Mode)

	_, ok = s.Lookup(FileRef("/etc/defaultdomain"))
	assert.False(t, ok)

	assert.Len(t, s.Packages(), 1)
	assert.Len(t, s.Files(), 1)
	assert.Len(t, s.Execs(), 1)
	assert.Len(t, s.Services(), 1)
	assert.True(t, s.IncludesClass("rpcbind"))
}

func TestSetAddDuplicate(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add(NewPackage("ypbind", "installed")))

	err := s.Add(NewPackage("ypbind", "latest"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Package[ypbind]")
	assert.Equal(t, 1, s.Len())
}

func TestSetIncludeIsIdempotent(t *testing.T) {
	s := NewSet()
	s.Include("rpcbind")
	s.Include("rpcbind")
	assert.Equal(t, []string{"rpcbind"}, s.Includes)
}

func TestSetOrder(t *testing.T) {
	s := sampleSet(t)

	order, err := s.Order()
	require.NoError(t, err)

	index := make(map[Ref]int, len(order))
	for i, ref := range order {
		index[ref] = i
	}
	require.Len(t, index, 5)

	assert.Less(t, index[PackageRef("ypbind")], index[FileRef("/etc/yp.conf")])
	assert.Less(t, index[FileRef("/etc/yp.conf")], index[ExecRef("ypdomainname")])
	assert.Less(t, index[ExecRef("ypdomainname")], index[ServiceRef("nis_service")])
	assert.Less(t, index[ClassRef("rpcbind")], index[ServiceRef("nis_service")])
}

func TestSetOrderIsStable(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add(
		NewPackage("b", "installed"),
		NewPackage("a", "installed"),
		NewPackage("c", "installed"),
	))

	first, err := s.Order()
	require.NoError(t, err)
	second, err := s.Order()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []Ref{PackageRef("b"), PackageRef("a"), PackageRef("c")}, first)
}

func TestSetGraphRejectsDanglingReference(t *testing.T) {
	s := NewSet()
	f := NewFile("/etc/yp.conf", "", "0644")
	f.Require = []Ref{PackageRef("missing")}
	require.NoError(t, s.Add(f))

	_, err := s.Graph()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared")

	_, err = s.Order()
	assert.Error(t, err)
}

func TestSetGraphRejectsCycle(t *testing.T) {
	s := NewSet()
	a := NewExec("a", "true", nil)
	a.Notify = []Ref{ExecRef("b")}
	b := NewExec("b", "true", nil)
	b.Notify = []Ref{ExecRef("a")}
	require.NoError(t, s.Add(a, b))

	_, err := s.Graph()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestSetGraphAcceptsRedundantEdges(t *testing.T) {
	s := NewSet()
	a := NewExec("a", "true", nil)
	a.Notify = []Ref{ExecRef("b")}
	b := NewExec("b", "true", nil)
	b.Require = []Ref{ExecRef("a")}
	require.NoError(t, s.Add(a, b))

	_, err := s.Graph()
	assert.NoError(t, err)
}

func TestSetValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, sampleSet(t).Validate())
	})

	t.Run("no service", func(t *testing.T) {
		s := NewSet()
		require.NoError(t, s.Add(NewPackage("ypbind", "installed")))
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one service")
	})

	t.Run("two services", func(t *testing.T) {
		s := NewSet()
		require.NoError(t, s.Add(
			NewService("one", "ypbind", "running", true),
			NewService("two", "nis", "running", true),
		))
		assert.Error(t, s.Validate())
	})
}
