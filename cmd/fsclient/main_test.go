package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/filedrop/internal/client"
	"github.com/koustreak/filedrop/internal/logger"
)

type fakeClient struct {
	outcome client.Outcome
	limit   string
	calls   []string
}

func (f *fakeClient) List(ctx context.Context) client.Outcome {
	f.calls = append(f.calls, "list")
	return f.outcome
}

func (f *fakeClient) Upload(ctx context.Context, localPath string) client.Outcome {
	f.calls = append(f.calls, "upload "+localPath)
	return f.outcome
}

func (f *fakeClient) Delete(ctx context.Context, name string) client.Outcome {
	f.calls = append(f.calls, "delete "+name)
	return f.outcome
}

func (f *fakeClient) UploadSizeLimit(ctx context.Context) string {
	return f.limit
}

func parseAndDispatch(t *testing.T, f *fakeClient, args ...string) (int, string) {
	t.Helper()
	stderr := &bytes.Buffer{}

	opts, err := parseArgs(args)
	if err != nil {
		printUsage(context.Background(), stderr, f)
		return 1, stderr.String()
	}
	code := dispatch(context.Background(), opts.commands, f, logger.Nop(), stderr)
	return code, stderr.String()
}

func TestParseArgs_ShortAndLongForms(t *testing.T) {
	tests := []struct {
		args []string
		want command
	}{
		{args: []string{"-l"}, want: command{name: cmdList}},
		{args: []string{"--list-files"}, want: command{name: cmdList}},
		{args: []string{"-u", "a.txt"}, want: command{name: cmdUpload, arg: "a.txt"}},
		{args: []string{"--upload-file", "a.txt"}, want: command{name: cmdUpload, arg: "a.txt"}},
		{args: []string{"-d", "b.txt"}, want: command{name: cmdDelete, arg: "b.txt"}},
		{args: []string{"--delete-file=b.txt"}, want: command{name: cmdDelete, arg: "b.txt"}},
		{args: []string{"-l", "--list-files"}, want: command{name: cmdList}},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			opts, err := parseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, []command{tt.want}, opts.commands)
		})
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	opts, err := parseArgs([]string{"-config", "client.yaml", "-server", "http://files:8080", "-l"})
	require.NoError(t, err)

	assert.Equal(t, "client.yaml", opts.configPath)
	assert.Equal(t, "http://files:8080", opts.serverURL)
}

func TestParseArgs_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"-d"},
		{"--delete-file"},
		{"-u", ""},
		{"--bogus"},
		{"-l", "extra"},
	} {
		_, err := parseArgs(args)
		assert.Error(t, err, "args %v", args)
	}
}

func TestDispatch_RunsSingleCommand(t *testing.T) {
	f := &fakeClient{outcome: client.Outcome{Kind: client.Success}}

	code, _ := parseAndDispatch(t, f, "-d", "fileToDelete.txt")

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"delete fileToDelete.txt"}, f.calls)
}

func TestDispatch_UploadChecksLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	f := &fakeClient{outcome: client.Outcome{Kind: client.Success}}

	code, usage := parseAndDispatch(t, f, "-u", path)
	assert.Equal(t, 1, code)
	assert.Empty(t, f.calls, "client must not be called for a missing file")
	assert.Contains(t, usage, "exactly one of the options")

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	code, _ = parseAndDispatch(t, f, "-u", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"upload " + path}, f.calls)
}

func TestDispatch_NoCommandOrSeveral(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-l", "-d", "a.txt"},
		{"-d"},
	} {
		f := &fakeClient{limit: "10M"}

		code, usage := parseAndDispatch(t, f, args...)

		assert.Equal(t, 1, code, "args %v", args)
		assert.Empty(t, f.calls, "args %v", args)
		assert.Contains(t, usage, "<= 10M")
	}
}

func TestDispatch_NonSuccessExitsOne(t *testing.T) {
	f := &fakeClient{outcome: client.Outcome{Kind: client.NotFound}}

	code, _ := parseAndDispatch(t, f, "-l")

	assert.Equal(t, 1, code)
	assert.Equal(t, []string{"list"}, f.calls)
}

func TestPrintUsage_UnknownLimit(t *testing.T) {
	buf := &bytes.Buffer{}

	printUsage(context.Background(), buf, &fakeClient{})

	assert.Contains(t, buf.String(), "within bounds allowed by the server")
}
