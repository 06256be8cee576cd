package usecase

import (
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/domain"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/port"
)

// BuildIndex folds every supplied tag set into one lookup keyed by the
// normalized composite key. Tag sets are visited in the order given, records
// within a set in row order, so on a key collision the record seen last wins.
// In strict mode the first collision fails the run instead, naming the key
// and both source files.
func BuildIndex(tagSets [][]domain.TagRecord, strict bool) (map[domain.MatchKey]domain.TagRecord, error) {
	index := make(map[domain.MatchKey]domain.TagRecord)
	for _, tags := range tagSets {
		for _, tag := range tags {
			key := tag.Key()
			if prev, ok := index[key]; ok && strict {
				return nil, &port.DuplicateKeyError{
					Key:        key,
					FirstFile:  prev.SourceFile,
					SecondFile: tag.SourceFile,
				}
			}
			index[key] = tag
		}
	}
	return index, nil
}

// Match probes the index once per source row. The returned slice has exactly
// one outcome per source record, in input order; no row is ever dropped.
func Match(sources []domain.SourceRecord, index map[domain.MatchKey]domain.TagRecord) []domain.MatchOutcome {
	outcomes := make([]domain.MatchOutcome, 0, len(sources))
	for i := range sources {
		src := &sources[i]
		if tag, ok := index[src.Key()]; ok {
			outcomes = append(outcomes, domain.MatchOutcome{
				Status: domain.OutcomeMatched,
				Source: src,
				Tag:    &tag,
			})
			continue
		}
		outcomes = append(outcomes, domain.MatchOutcome{
			Status: domain.OutcomeUnmatched,
			Source: src,
		})
	}
	return outcomes
}
