package main

import (
	"bytes"
	"fmt"
	"os"

	"benchres/common"
	"benchres/i18n"
	"benchres/keyfile"
	"benchres/result"
)

// readResults reads a benchmark.conf or, if the first non-blank character is '{', a JSON result
// document.
func readResults(fn string, tr i18n.Translator) ([]*result.Result, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	var (
		results    []*result.Result
		softErrors int
	)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		results, softErrors, err = result.DecodeJSONDocument(bytes.NewReader(data))
	} else {
		results, softErrors, err = decodeConf(fn, data, tr)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	if softErrors > 0 {
		common.Log.Warningf("%s: %d unreadable entries skipped", fn, softErrors)
	}
	common.Log.Debugf("%s: %d results", fn, len(results))
	return results, nil
}

func decodeConf(fn string, data []byte, tr i18n.Translator) ([]*result.Result, int, error) {
	entries, softErrors, err := keyfile.ReadBenchmarkConf(bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	results := make([]*result.Result, 0, len(entries))
	for _, e := range entries {
		common.Log.Debugf("%s:%d: [%s] %s: %d values", fn, e.Line, e.Section, e.Key, len(e.Values))
		results = append(results, result.DecodeConfigLine(e.Section, e.Key, e.Values, tr))
	}
	return results, softErrors, nil
}

// confSections groups encoded results by benchmark, in order of first appearance.
func confSections(results []*result.Result) []keyfile.Section {
	sections := make([]keyfile.Section, 0)
	index := make(map[string]int)
	for _, r := range results {
		ix, found := index[r.Name]
		if !found {
			ix = len(sections)
			index[r.Name] = ix
			sections = append(sections, keyfile.Section{Name: r.Name})
		}
		sections[ix].Lines = append(sections[ix].Lines, result.EncodeConfigLine(r))
	}
	return sections
}
