package api

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Periods decodes either a JSON array of periods or an object keyed by the
// zero-based period index ({"0": {...}, "1": {...}}). Object entries come
// out ordered by index.
type Periods []Period

func (p *Periods) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}

	if data[0] == '[' {
		var list []Period
		if err := json.Unmarshal(data, &list); err != nil {
			return errors.Wrap(err, "decoding timetable periods")
		}
		for idx := range list {
			list[idx].Index = idx
		}
		*p = list
		return nil
	}

	var keyed map[string]*Period
	if err := json.Unmarshal(data, &keyed); err != nil {
		return errors.Wrap(err, "decoding timetable periods")
	}
	periods := make(Periods, 0, len(keyed))
	for key, period := range keyed {
		index, err := strconv.Atoi(key)
		if err != nil {
			return errors.Errorf("timetable period key %q is not an index", key)
		}
		entry := Period{Index: index}
		if period != nil {
			entry.SubjectName = period.SubjectName
		}
		periods = append(periods, entry)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Index < periods[j].Index })
	*p = periods
	return nil
}
