package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	type sample struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	assert.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	// first call writes, second compares against what was written
	Validate(t, sample{Name: "a", Count: 1})

	b, err := os.ReadFile(filepath.Join("testdata", "snapshot.TestValidate-0.json"))
	assert.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"a\",\n  \"count\": 1\n}\n", string(b))

	assert.NoError(t, os.WriteFile(filepath.Join("testdata", "snapshot.TestValidate-1.json"), b, 0644))
	Validate(t, sample{Name: "a", Count: 1})
}
