package skills

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedList(t *testing.T) {
	dict := Default()

	require.NotNil(t, dict)
	assert.Greater(t, dict.Len(), 100)
	assert.Same(t, dict, Default(), "default dictionary should be built once")

	names := dict.Names()
	assert.Equal(t, "python", names[0])
	assert.Contains(t, names, "node.js")
	assert.Contains(t, names, "machine learning")
}

func TestDefault_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*Dictionary, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Default()
		}(i)
	}
	wg.Wait()

	for _, d := range results {
		assert.Same(t, results[0], d)
	}
}

func TestNewDictionary_NormalizesAndDeduplicates(t *testing.T) {
	dict := NewDictionary([]string{" Python ", "node.js", "Node JS", "", "   ", "python", "React"})

	assert.Equal(t, []string{"python", "node.js", "react"}, dict.Names())
	assert.Equal(t, 3, dict.Len())
}

func TestNames_ReturnsCopy(t *testing.T) {
	dict := NewDictionary([]string{"go", "rust"})
	names := dict.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"go", "rust"}, dict.Names())
}

func TestLoadDictionary_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Go", "Kubernetes", "rest api"]`), 0644))

	dict, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "kubernetes", "rest api"}, dict.Names())
}

func TestLoadDictionary_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	content := "- Terraform\n- AWS\n- ci/cd\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	dict, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"terraform", "aws", "ci/cd"}, dict.Names())
}

func TestLoadDictionary_Errors(t *testing.T) {
	_, err := LoadDictionary("")
	assert.Error(t, err)

	_, err = LoadDictionary(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"skills": "nope"}`), 0644))
	_, err = LoadDictionary(bad)
	assert.Error(t, err)

	badYAML := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(badYAML, []byte("key: value\n"), 0644))
	_, err = LoadDictionary(badYAML)
	assert.Error(t, err)
}
