package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `enemy1,main1,enemy2,main2,enemy3,main3,enemy4,main4,enemy5,main5,main_pre_b1,main_pre_b2,enemy_pre_b1,enemy_pre_b2,main_post_b,enemy_post_b,is_first,is_win
Frieren,Aria,Gunther,Belian,Hwayoung,Candy,Ilynav,Destina,Jenua,Emilia,Ran,Peira,Violet,,Ilynav,Candy,0,0
Aria,Frieren,Belian,Gunther,Candy,Hwayoung,Destina,Ilynav,Emilia,Jenua,,,,,,,1,1
`

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	records, err := CSVSource{Path: path}.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, []string{"Aria", "Belian", "Candy", "Destina", "Emilia"}, first.MyPicks)
	assert.Equal(t, []string{"Frieren", "Gunther", "Hwayoung", "Ilynav", "Jenua"}, first.EnemyPicks)
	assert.Equal(t, []string{"Ran", "Peira"}, first.MyPreBans)
	assert.Equal(t, []string{"Violet"}, first.EnemyPreBans)
	assert.Equal(t, "Ilynav", first.MyPostBan)
	assert.False(t, first.MyFirst)
	assert.True(t, first.MyWin)

	second := records[1]
	assert.True(t, second.MyFirst)
	assert.False(t, second.MyWin)
	assert.Empty(t, second.MyPreBans)
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")}.Records(context.Background())
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestCSVSource_MalformedRow(t *testing.T) {
	// A bare quote mid-file must fail the whole load, not quietly
	// truncate the dataset at the bad row.
	rows := sampleCSV +
		"Aria,Frie\"ren,Belian,Gunther,Candy,Hwayoung,Destina,Ilynav,Emilia,Jenua,,,,,,,1,0\n"
	path := filepath.Join(t.TempDir(), "drafts.csv")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))

	records, err := CSVSource{Path: path}.Records(context.Background())
	require.ErrorIs(t, err, ErrDataUnavailable)
	assert.Nil(t, records)
}

func TestCSVSource_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("enemy1,main1\nA,B\n"), 0o644))

	_, err := CSVSource{Path: path}.Records(context.Background())
	require.ErrorIs(t, err, ErrDataUnavailable)
}
