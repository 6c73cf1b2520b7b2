package pipeline

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-builder/internal/llm"
	"github.com/jonathan/profile-builder/internal/types"
)

const sampleProfileJSON = `{"title":"Senior HR Leader","gender":"Female","experience_summary":"20+ years global HR leadership","sector_focus":"FMCG, Manufacturing","location":"Romania (Remote/Hybrid)","experience":[{"job_title":"Managing Partner","description":"Founder of a consulting firm","achievements":["Leads HR transformation","Optimizes workforce performance"]},{"job_title":"Group HR Director","description":"Executive at an industrial group","achievements":["Directed HR across 27 entities","Negotiated 7 labor agreements"]},{"job_title":"Regional HR Manager","description":"Fortune 500 manufacturer","achievements":["Coordinated HR across 10 countries","Ran annual compensation cycles"]}],"core_strengths":["HR Strategy","Organizational Design","Compensation & Benefits"]}`

var templateShapes = []string{
	"header_title",
	"sidebar_gender_text",
	"sidebar_sectors",
	"sidebar_location",
	"sidebar_summary",
	"role_1",
	"role_2",
	"footer_strengths",
}

// writeTemplate builds a one-slide presentation with a text box per name in
// templateShapes and a filled rectangle named gender_box_main
func writeTemplate(t *testing.T, dir string) string {
	t.Helper()

	var shapes strings.Builder
	shapes.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="gender_box_main"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:solidFill><a:srgbClr val="000000"/></a:solidFill></p:spPr></p:sp>`)
	for i, name := range templateShapes {
		fmt.Fprintf(&shapes, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:t>placeholder</a:t></a:r></a:p></p:txBody></p:sp>`, i+3, name)
	}

	parts := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`},
		{"ppt/presentation.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:presentation xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst></p:presentation>`},
		{"ppt/_rels/presentation.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/></Relationships>`},
		{"ppt/slides/slide1.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` + shapes.String() + `</p:spTree></p:cSld></p:sld>`},
	}

	path := filepath.Join(dir, "template.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(p.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

// testOptions returns options rooted in a temporary directory holding a
// résumé and a template
func testOptions(t *testing.T) RunOptions {
	t.Helper()
	dir := t.TempDir()

	resumePath := filepath.Join(dir, "cv_text.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Jane Doe\nGroup HR Director at Acme Dairy, 2015-2020\n"), 0o644))

	return RunOptions{
		ResumePath:   resumePath,
		ProfilePath:  filepath.Join(dir, "json_output.json"),
		TemplatePath: writeTemplate(t, dir),
		SlidePath:    filepath.Join(dir, "profile.pptx"),
		SQLPath:      filepath.Join(dir, "sql_output.sql"),
		Client:       &fakeClient{response: sampleProfileJSON},
		Output:       &strings.Builder{},
	}
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

// fakeRecorder keeps runs and artifacts in memory
type fakeRecorder struct {
	mu        sync.Mutex
	runs      map[uuid.UUID]string
	completed map[uuid.UUID]error
	artifacts map[string]any
	profiles  []*types.Profile
	linked    map[uuid.UUID]int64
	insertErr error
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		runs:      make(map[uuid.UUID]string),
		completed: make(map[uuid.UUID]error),
		artifacts: make(map[string]any),
		linked:    make(map[uuid.UUID]int64),
	}
}

func (r *fakeRecorder) CreateRun(_ context.Context, runID uuid.UUID, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[runID] = source
	return nil
}

func (r *fakeRecorder) CompleteRun(_ context.Context, runID uuid.UUID, runErr error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed[runID] = runErr
	return nil
}

func (r *fakeRecorder) SaveArtifact(_ context.Context, _ uuid.UUID, step string, content any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[step] = content
	return nil
}

func (r *fakeRecorder) SaveTextArtifact(_ context.Context, _ uuid.UUID, step, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[step] = text
	return nil
}

func (r *fakeRecorder) InsertProfile(_ context.Context, p *types.Profile) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	r.profiles = append(r.profiles, p)
	return int64(len(r.profiles)), nil
}

func (r *fakeRecorder) LinkExecutive(_ context.Context, runID uuid.UUID, executiveID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linked[runID] = executiveID
	return nil
}
