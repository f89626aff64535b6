package dirview

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/servus/components/directory"
	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/directory/dirtest"
)

func newTestDirectory(network *dirtest.Network) *directory.Directory {
	return directory.New("_foo._tcp", directory.Params{
		Backend: directory.KindTest,
		Network: network,
	})
}

func TestModelTree(t *testing.T) {
	network := dirtest.NewNetwork()

	announcer := newTestDirectory(network)
	announcer.Set("foo", "bar")
	require.True(t, announcer.Announce(4242, "I1").OK())

	browser := newTestDirectory(network)
	model := NewModel(browser)
	require.True(t, browser.IsBrowsing())

	require.Equal(t, &Node{Text: "Instances for _foo._tcp"}, model.Tree())

	require.NoError(t, model.Run())
	require.Equal(t, []string{"I1"}, model.Instances())

	require.Equal(t, &Node{
		Text: "Instances for _foo._tcp",
		Children: []*Node{{
			Text: "I1",
			Children: []*Node{
				{Text: "foo = bar"},
				{Text: "servus_host = " + dirtest.Host},
				{Text: "servus_port = 4242"},
			},
		}},
	}, model.Tree())

	announcer.Withdraw()
	require.NoError(t, model.Run())
	require.Empty(t, model.Instances())

	require.NoError(t, model.Close())
	require.False(t, browser.IsBrowsing())
}

func TestModelKeepsForeignSession(t *testing.T) {
	browser := newTestDirectory(dirtest.NewNetwork())
	require.True(t, browser.BeginBrowsing(dircore.ScopeAll).OK())

	model := NewModel(browser)
	require.NoError(t, model.Close())
	require.True(t, browser.IsBrowsing())
}

func TestModelDiscoveryOrder(t *testing.T) {
	network := dirtest.NewNetwork()

	browser := newTestDirectory(network)
	model := NewModel(browser)

	second := newTestDirectory(network)
	require.True(t, second.Announce(2, "B").OK())
	require.NoError(t, model.Run())

	first := newTestDirectory(network)
	require.True(t, first.Announce(1, "A").OK())
	require.NoError(t, model.Run())

	require.Equal(t, []string{"B", "A"}, model.Instances())
}

func TestTreeHandler(t *testing.T) {
	network := dirtest.NewNetwork()

	announcer := newTestDirectory(network)
	require.True(t, announcer.Announce(1, "I1").OK())

	browser := newTestDirectory(network)
	model := NewModel(browser)
	require.NoError(t, model.Run())

	mux := http.NewServeMux()
	mux.Handle("/api/v1/instances", NewTreeHandler(model))
	mux.Handle("/api/v1/snapshot", NewSnapshotHandler(browser))

	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/instances")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var tree Node
	require.NoError(t, json.Unmarshal(body, &tree))
	require.Equal(t, "Instances for _foo._tcp", tree.Text)
	require.Len(t, tree.Children, 1)
	require.Equal(t, "I1", tree.Children[0].Text)

	resp, err = http.Get(server.URL + "/api/v1/instances?format=text")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.Equal(t, "Instances for _foo._tcp\n"+
		"    I1\n"+
		"        servus_host = "+dirtest.Host+"\n"+
		"        servus_port = 1\n", string(body))

	resp, err = http.Get(server.URL + "/api/v1/instances?format=xml")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/v1/snapshot")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var snapshot map[string]map[string]string
	require.NoError(t, json.Unmarshal(body, &snapshot))
	require.Equal(t, "1", snapshot["I1"][dircore.KeyPort])
}

func TestTreeHandlerUnsupportedMethod(t *testing.T) {
	model := NewModel(newTestDirectory(dirtest.NewNetwork()))

	recorder := httptest.NewRecorder()
	NewTreeHandler(model).ServeHTTP(recorder,
		httptest.NewRequest(http.MethodPost, "/api/v1/instances", nil))

	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestMetrics(t *testing.T) {
	network := dirtest.NewNetwork()
	reg := prometheus.NewRegistry()

	browser := newTestDirectory(network)

	metrics, err := NewMetrics(reg, browser)
	require.NoError(t, err)

	_, err = NewMetrics(reg, browser)
	require.Error(t, err)

	browser.AddListener(metrics)
	require.True(t, browser.BeginBrowsing(dircore.ScopeAll).OK())

	a1 := newTestDirectory(network)
	require.True(t, a1.Announce(1, "A1").OK())
	a2 := newTestDirectory(network)
	require.True(t, a2.Announce(2, "A2").OK())

	require.True(t, browser.Browse(0).OK())
	require.Equal(t, float64(2), instancesGauge(t, reg))
	require.Equal(t, float64(2), testutil.ToFloat64(metrics.added))

	a2.Withdraw()
	require.True(t, browser.Browse(0).OK())
	require.Equal(t, float64(1), instancesGauge(t, reg))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.removed))
}

func TestMetricsRepeatedSessions(t *testing.T) {
	network := dirtest.NewNetwork()
	reg := prometheus.NewRegistry()

	announcer := newTestDirectory(network)
	require.True(t, announcer.Announce(1, "I1").OK())

	browser := newTestDirectory(network)

	metrics, err := NewMetrics(reg, browser)
	require.NoError(t, err)
	browser.AddListener(metrics)

	for n := 0; n < 3; n++ {
		require.Equal(t, []string{"I1"}, browser.Discover(dircore.ScopeAll, 0))
	}

	require.Equal(t, float64(1), instancesGauge(t, reg))
	require.Equal(t, float64(3), testutil.ToFloat64(metrics.added))
}

func instancesGauge(t *testing.T, reg *prometheus.Registry) float64 {
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() == "servus_instances" {
			require.Len(t, family.GetMetric(), 1)

			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}

	require.Fail(t, "servus_instances not found")

	return 0
}

func TestModelHandleErrorKeepsActiveSession(t *testing.T) {
	network := dirtest.NewNetwork()

	announcer := newTestDirectory(network)
	require.True(t, announcer.Announce(1, "I1").OK())

	browser := newTestDirectory(network)
	model := NewModel(browser)
	require.NoError(t, model.Run())

	model.HandleError(errors.New("failed"))
	require.True(t, browser.IsBrowsing())
	require.Equal(t, []string{"I1"}, model.Instances())
}
