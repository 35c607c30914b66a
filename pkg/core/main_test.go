package core

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
	"github.com/contentdepot/depot/pkg/store/bdgr"
)

const testDomain = "test-domain"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
		goleak.IgnoreTopFunction("github.com/golang/glog.(*loggingT).flushDaemon"),
	)
}

func testMeta(t *testing.T) store.Store {
	meta := bdgr.New("", bdgr.WithInMemory(true))
	require.NoError(t, meta.Initialize())
	t.Cleanup(func() {
		require.NoError(t, meta.Close())
	})
	return meta
}

func makeRepo(t *testing.T, meta store.Store, name string, retain int) {
	err := CreateRepo(model.RepoDescriptor{
		Domain:         testDomain,
		Name:           name,
		Description:    "test " + name,
		Contributor:    model.Contributor{Email: "test@example.com"},
		RetainVersions: retain,
		Timestamp:      time.Now(),
	}, meta)
	require.NoError(t, err)
}

func testUnit(path, unique string) model.ContentUnit {
	return model.ContentUnit{
		Domain:        testDomain,
		Type:          "file",
		NaturalKey:    map[string]string{"path": path},
		UniquenessKey: unique,
	}
}

// registerUnits registers content units named by path and returns a
// name -> ID index
func registerUnits(t *testing.T, meta store.Store, paths ...string) map[string]string {
	ids := make(map[string]string, len(paths))
	for _, path := range paths {
		unit, err := GetOrCreateContent(testUnit(path, ""), meta)
		require.NoError(t, err)
		ids[path] = unit.ID
	}
	return ids
}

// idsOf maps names through the index, sorted the way content listings are
func idsOf(ids map[string]string, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, ids[name])
	}
	sort.Strings(out)
	return out
}
