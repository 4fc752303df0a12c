package aggregate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDir(t *testing.T) {
	dir := t.TempDir()

	imp := "province_territory,category_1,total_flag,year,value\n" +
		"Ontario,Program A,false,2018,100\n" +
		"Ontario,Program B,false,2018,50\n" +
		"Ontario,Total,true,2018,150\n" +
		"Ontario,Program A,false,2019,70\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extracted_imp.csv"), []byte(imp), 0644))

	hc := "country_citizenship,total_flag,year,month,value\n" +
		"France,false,2018,01,5\n" +
		"France,false,2018,02,7\n" +
		"Total,true,2018,01,12\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extracted_hc.csv"), []byte(hc), 0644))

	rows, err := CombineDir(dir, nil)
	require.NoError(t, err)

	// Subtotal rows excluded, monthly observations roll up to the year,
	// output sorted by stream then year.
	want := []StreamYear{
		{Stream: "hc", Year: 2018, Value: 12},
		{Stream: "imp", Year: 2018, Value: 150},
		{Stream: "imp", Year: 2019, Value: 70},
	}
	assert.Equal(t, want, rows)
}

func TestCombineDirAllMissing(t *testing.T) {
	rows, err := CombineDir(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadStreamMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extracted_imp.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	_, err := readStream(path, "imp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agg", "summary.csv")
	rows := []StreamYear{
		{Stream: "imp", Year: 2018, Value: 150},
		{Stream: "tfw", Year: 2018, Value: 90},
	}
	require.NoError(t, WriteCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stream,year,value\nimp,2018,150\ntfw,2018,90\n", string(data))
}
