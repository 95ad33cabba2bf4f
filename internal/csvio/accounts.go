package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

// ReadAccounts returns the account column of a CSV file. Files whose first
// row does not name an account column are read as a bare address list. A
// missing file yields an empty set.
func ReadAccounts(path string) (model.AddressSet, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return model.NewAddressSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	set, err := readAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return set, nil
}

func readAccounts(r io.Reader) (model.AddressSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	set := model.NewAddressSet()
	col := 0
	for first := true; ; first = false {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
		if first {
			if i := indexOf(row, ColAccount); i >= 0 {
				col = i
				continue
			}
		}
		if col < len(row) {
			set.Add(strings.TrimSpace(row[col]))
		}
	}
}

func indexOf(row []string, name string) int {
	for i, v := range row {
		if strings.TrimSpace(strings.TrimPrefix(v, "\ufeff")) == name {
			return i
		}
	}
	return -1
}
