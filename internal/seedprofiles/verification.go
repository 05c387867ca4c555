package seedprofiles

import (
	"fmt"
	"log"
)

// verifyResults checks the structural invariants of every retrieved
// match list: ranks are contiguous from 1, scores are sorted descending
// and stay within the score scale.
func verifyResults(teammates, candidates map[string][]MatchEntry) error {
	log.Println("verifying match results...")

	if len(teammates) == 0 && len(candidates) == 0 {
		return fmt.Errorf("no match results to verify")
	}

	warnings := 0
	for id, matches := range teammates {
		if err := verifyMatchList(matches); err != nil {
			log.Printf("teammate list for %s: %v", id, err)
			warnings++
		}
	}
	for id, matches := range candidates {
		if err := verifyMatchList(matches); err != nil {
			log.Printf("candidate list for %s: %v", id, err)
			warnings++
		}
	}

	if warnings > 0 {
		return fmt.Errorf("%d match lists failed verification", warnings)
	}

	log.Println("match verification completed")
	return nil
}

func verifyMatchList(matches []MatchEntry) error {
	for i, m := range matches {
		if m.Rank != i+1 {
			return fmt.Errorf("rank at position %d is %d, want %d", i, m.Rank, i+1)
		}
		if m.Score < 0 || m.Score > 100 {
			return fmt.Errorf("score %d at rank %d is out of range", m.Score, m.Rank)
		}
		if i > 0 && m.Score > matches[i-1].Score {
			return fmt.Errorf("score at rank %d exceeds the score at rank %d", m.Rank, m.Rank-1)
		}
		if m.Candidate.ID == "" {
			return fmt.Errorf("empty candidate id at rank %d", m.Rank)
		}
	}
	return nil
}

// displayTopMatches prints a sample of the retrieved match lists.
func displayTopMatches(teammates map[string][]MatchEntry, verbose bool) {
	shown := 0
	for id, matches := range teammates {
		if shown >= 3 {
			break
		}
		topN := minInt(5, len(matches))
		log.Printf("top %d teammates for %s:", topN, id)
		for i := 0; i < topN; i++ {
			m := matches[i]
			log.Printf("   %d. %s - score: %d", m.Rank, m.Candidate.ID, m.Score)
		}
		shown++
	}

	if verbose {
		total, sum := 0, 0
		for _, matches := range teammates {
			for _, m := range matches {
				total++
				sum += m.Score
			}
		}
		if total > 0 {
			log.Printf("average teammate score across %d entries: %.1f", total, float64(sum)/float64(total))
		}
	}
}
