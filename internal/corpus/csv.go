package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVSource reads records from the drafts dataset CSV. The file is
// header-addressed, so column order does not matter.
type CSVSource struct {
	Path string
}

var pickColumns = []string{
	"enemy1", "main1", "enemy2", "main2", "enemy3", "main3",
	"enemy4", "main4", "enemy5", "main5",
}

func (c CSVSource) Records(ctx context.Context) ([]Record, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDataUnavailable, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range append([]string{"is_first", "is_win"}, pickColumns...) {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: dataset missing column %q", ErrDataUnavailable, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrDataUnavailable, c.Path, err)
		}

		rec := Record{
			// is_win == 0 means the recorded player won.
			MyWin:        field(row, "is_win") == "0",
			MyFirst:      field(row, "is_first") == "1",
			MyPostBan:    field(row, "main_post_b"),
			EnemyPostBan: field(row, "enemy_post_b"),
		}
		for _, name := range []string{"main1", "main2", "main3", "main4", "main5"} {
			rec.MyPicks = append(rec.MyPicks, field(row, name))
		}
		for _, name := range []string{"enemy1", "enemy2", "enemy3", "enemy4", "enemy5"} {
			rec.EnemyPicks = append(rec.EnemyPicks, field(row, name))
		}
		for _, name := range []string{"main_pre_b1", "main_pre_b2"} {
			if v := field(row, name); v != "" {
				rec.MyPreBans = append(rec.MyPreBans, v)
			}
		}
		for _, name := range []string{"enemy_pre_b1", "enemy_pre_b2"} {
			if v := field(row, name); v != "" {
				rec.EnemyPreBans = append(rec.EnemyPreBans, v)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
