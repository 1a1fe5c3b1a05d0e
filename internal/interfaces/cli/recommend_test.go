package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CineMood/internal/testutil"
	"github.com/turtacn/CineMood/pkg/errors"
)

const testCSV = `title,genres,emotion
Up,Comedy,
Heat,Drama,
Amélie,"Comedy, Romance",
Alien,Horror,
Paddington,Family,happy
`

func TestRecommend_Text(t *testing.T) {
	path := testutil.WriteDataset(t, testCSV)

	out, _, err := execute(t, "recommend", "--dataset", path, "happy=0.9", "sad=0.2")
	require.NoError(t, err)
	assert.Equal(t, "Detected emotion: happy\n  - Up\n  - Amélie\n  - Paddington\n", out)
}

func TestRecommend_JSONWithLimit(t *testing.T) {
	path := testutil.WriteDataset(t, testCSV)

	out, _, err := execute(t, "-o", "json", "recommend", "-d", path, "--limit", "1", "happy=0.9")
	require.NoError(t, err)

	var got RecommendOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, RecommendOutput{DetectedEmotion: "happy", Recommendations: []string{"Up"}}, got)
}

func TestRecommend_AliasAndNoMatch(t *testing.T) {
	path := testutil.WriteDataset(t, testCSV)

	out, _, err := execute(t, "recommend", "-d", path, "fearful=0.7")
	require.NoError(t, err)
	assert.Contains(t, out, "Detected emotion: fear\n  - Alien\n")

	out, _, err = execute(t, "recommend", "-d", path, "surprised=0.7")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching movies found for surprise")
}

func TestRecommend_Errors(t *testing.T) {
	path := testutil.WriteDataset(t, testCSV)

	_, _, err := execute(t, "recommend", "-d", path)
	assert.Error(t, err, "scores are required")

	_, _, err = execute(t, "recommend", "-d", path, "happy")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	_, _, err = execute(t, "recommend", "-d", filepath.Join(t.TempDir(), "missing.csv"), "happy=1")
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetUnavailable))
}

//Personal.AI order the ending
