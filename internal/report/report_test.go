package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcrsim/core/sim"
)

func simulated(t *testing.T) (sim.Input, *sim.Result) {
	t.Helper()
	fwd := "ATGGTGAGCA"
	rev := "TTACTTGTAC"
	// rc(rev) = GTACAAGTAA; place fwd at 0, rc(rev) at 30.
	template := fwd + strings.Repeat("CCGG", 5) + "GTACAAGTAA"
	in := sim.NewInput(fwd, rev, template)
	in.TemplateID = "t1"
	res, err := sim.Simulate(in)
	require.NoError(t, err)
	require.Len(t, res.Amplicons, 1)
	return in, res
}

func TestWriteJSON(t *testing.T) {
	_, res := simulated(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []*sim.Result{res}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, true, decoded[0]["is_specific"])
	assert.Contains(t, decoded[0], "amplicons")
	assert.Contains(t, decoded[0], "forward_sites")
	assert.Contains(t, decoded[0], "reverse_sites")
	assert.Contains(t, decoded[0], "primer_dimer")
}

func TestWriteTSV(t *testing.T) {
	_, res := simulated(t)
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, []*sim.Result{res}, true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "template_id\tstart\t"))
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 10)
	assert.Equal(t, "t1", fields[0])
	assert.Equal(t, "0", fields[1])
	assert.Equal(t, "40", fields[2])
	assert.Equal(t, "40", fields[3])
	assert.Equal(t, "true", fields[5]) // primary
}

func TestWriteTSVNoHeader(t *testing.T) {
	_, res := simulated(t)
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, []*sim.Result{res}, false))
	assert.False(t, strings.Contains(buf.String(), "template_id"))
}

func TestWriteText(t *testing.T) {
	in, res := simulated(t)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, in, res))

	out := buf.String()
	assert.Contains(t, out, "template t1")
	assert.Contains(t, out, "amplicons: 1  specific: true")
	assert.Contains(t, out, "primer dimer:")
	assert.Contains(t, out, "product 1:")
	assert.Contains(t, out, "forward primer sites:")
	assert.Contains(t, out, "reverse primer sites:")
	assert.Contains(t, out, "5'-"+in.Forward+"-3' primer")
}

func TestRenderSiteForward(t *testing.T) {
	in, res := simulated(t)
	require.NotEmpty(t, res.ForwardSites)
	out := RenderSite([]byte(in.Template), in.Forward, res.ForwardSites[0])

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "+ pos 0 mm=0")
	assert.Contains(t, lines[1], in.Forward)
	assert.Contains(t, lines[2], strings.Repeat("|", len(in.Forward)))
	assert.Contains(t, lines[3], "template(+)")
}

func TestRenderSiteReverseShowsMinusStrand(t *testing.T) {
	in, res := simulated(t)
	require.NotEmpty(t, res.ReverseSites)
	out := RenderSite([]byte(in.Template), in.Reverse, res.ReverseSites[0])

	// The minus strand under the reverse primer reads as the primer itself
	// for a perfect match.
	assert.Contains(t, out, "5'-"+in.Reverse+"-3' template(-)")
	assert.Contains(t, out, "template(-)")
}

func TestIsBrokenPipe(t *testing.T) {
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(assert.AnError))
}
