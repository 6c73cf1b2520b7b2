package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-builder/internal/extraction"
	"github.com/jonathan/profile-builder/internal/llm"
)

const sampleProfileJSON = `{"title":"Senior HR Leader","gender":"Female","experience_summary":"20+ years global HR leadership","sector_focus":"FMCG, Manufacturing","location":"Romania (Remote/Hybrid)","experience":[{"job_title":"Managing Partner","description":"Founder of a consulting firm","achievements":["Leads HR transformation","Optimizes workforce performance"]},{"job_title":"Group HR Director","description":"Executive at an industrial group","achievements":["Directed HR across 27 entities","Negotiated 7 labor agreements"]},{"job_title":"Regional HR Manager","description":"Fortune 500 manufacturer","achievements":["Coordinated HR across 10 countries","Ran annual compensation cycles"]}],"core_strengths":["HR Strategy","Organizational Design","Compensation & Benefits"]}`

// cliResult holds the captured streams of one command execution
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// executeCommand runs the CLI in-process with every flag reset to its default
func executeCommand(t *testing.T, args ...string) cliResult {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// useClient swaps the generator constructor for the duration of the test
func useClient(t *testing.T, client llm.Client, err error) {
	t.Helper()
	previous := newClient
	newClient = func(context.Context, extraction.ClientOptions) (llm.Client, error) {
		return client, err
	}
	t.Cleanup(func() { newClient = previous })
}

// isolateEnv clears the variables that would point commands at real services
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"DATABASE_URL", "GEMINI_API_KEY", "PROFILE_JSON_PATH", "PROFILE_STRICT", "PROFILE_LOG_FILE", "PROFILE_FORBIDDEN_PHRASES", "PROFILE_RETRIES"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeTemplate builds a one-slide presentation with the sidebar, header,
// two role boxes and the footer
func writeTemplate(t *testing.T, dir string) string {
	t.Helper()

	names := []string{"header_title", "sidebar_gender_text", "sidebar_sectors", "sidebar_location", "sidebar_summary", "role_1", "role_2", "footer_strengths"}
	var shapes strings.Builder
	shapes.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="gender_box_main"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr><a:solidFill><a:srgbClr val="000000"/></a:solidFill></p:spPr></p:sp>`)
	for i, name := range names {
		fmt.Fprintf(&shapes, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>placeholder</a:t></a:r></a:p></p:txBody></p:sp>`, i+3, name)
	}

	parts := map[string]string{
		"[Content_Types].xml":             `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`,
		"ppt/presentation.xml":            `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:presentation xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst></p:presentation>`,
		"ppt/_rels/presentation.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/></Relationships>`,
		"ppt/slides/slide1.xml":           `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` + shapes.String() + `</p:spTree></p:cSld></p:sld>`,
	}

	path := filepath.Join(dir, "template.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

// fakeClient returns a fixed response
type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) GenerateStructured(_ context.Context, _ llm.StructuredRequest) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeClient) Model() string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }
