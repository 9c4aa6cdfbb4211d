package testframes

import (
	"fmt"
	"log"
	"strconv"
)

// verifyResults checks the invariants the ranking service promises: scores
// within range, a strictly ordered ranking with dense unshared ranks, and an
// export consistent with the live ranking.
func verifyResults(config *Config, ranks, rankings []RankedFrame, exportRows [][]string) error {
	log.Println("verifying results...")

	if len(rankings) == 0 {
		return fmt.Errorf("no rankings to verify")
	}

	if err := verifyScoreRange(ranks); err != nil {
		return err
	}
	if err := verifyOrdering(rankings); err != nil {
		return err
	}
	if err := verifyExportConsistency(rankings, exportRows); err != nil {
		log.Printf("export consistency warning: %v", err)
	} else {
		log.Println("export consistency verified")
	}

	displayTopFrames(rankings, config.Verbose)

	log.Println("result verification completed")
	return nil
}

// verifyScoreRange checks that every score sits in [0,10].
func verifyScoreRange(ranks []RankedFrame) error {
	for _, entry := range ranks {
		if entry.FinalScore < 0 || entry.FinalScore > 10 {
			return fmt.Errorf("frame %s final score %.4f outside [0,10]", entry.FrameID, entry.FinalScore)
		}
		for name, v := range entry.Scores {
			if v < 0 || v > 10 {
				return fmt.Errorf("frame %s metric %s value %.4f outside [0,10]", entry.FrameID, name, v)
			}
		}
	}
	return nil
}

// verifyOrdering checks descending scores, the frame_id tie-break, and dense
// sequential ranks with no sharing.
func verifyOrdering(rankings []RankedFrame) error {
	for i, entry := range rankings {
		if entry.Rank != i+1 {
			return fmt.Errorf("rank at position %d is %d, want %d", i, entry.Rank, i+1)
		}
		if i == 0 {
			continue
		}
		prev := rankings[i-1]
		if entry.FinalScore > prev.FinalScore {
			return fmt.Errorf("ranking not sorted: %s (%.4f) after %s (%.4f)",
				entry.FrameID, entry.FinalScore, prev.FrameID, prev.FinalScore)
		}
		if entry.FinalScore == prev.FinalScore && entry.FrameID < prev.FrameID {
			return fmt.Errorf("tie-break violated: %s before %s at score %.4f",
				prev.FrameID, entry.FrameID, entry.FinalScore)
		}
	}
	return nil
}

// verifyExportConsistency spot-checks the CSV export against the live
// ranking: same top frame, ranks sequential.
func verifyExportConsistency(rankings []RankedFrame, exportRows [][]string) error {
	if len(exportRows) == 0 {
		return fmt.Errorf("empty export")
	}

	// Columns: frame_id, group_id, rank, final_score, ...
	topRow := exportRows[0]
	if topRow[0] != rankings[0].FrameID {
		return fmt.Errorf("export top frame %s does not match ranking top frame %s",
			topRow[0], rankings[0].FrameID)
	}

	for i, row := range exportRows {
		rank, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("row %d has non-numeric rank %q", i, row[2])
		}
		if rank != i+1 {
			return fmt.Errorf("export rank at row %d is %d, want %d", i, rank, i+1)
		}
	}
	return nil
}

// displayTopFrames shows the top frames from the ranking.
func displayTopFrames(rankings []RankedFrame, verbose bool) {
	topN := 10
	if len(rankings) < topN {
		topN = len(rankings)
	}

	log.Printf("top %d frames:", topN)
	for i := 0; i < topN; i++ {
		entry := rankings[i]
		log.Printf("   %d. %s [%s] action=%s score=%.4f",
			entry.Rank, entry.FrameID, entry.GroupID, entry.Action, entry.FinalScore)
	}

	if verbose && len(rankings) > 0 {
		sum := 0.0
		for _, entry := range rankings {
			sum += entry.FinalScore
		}
		log.Printf("score statistics: avg=%.4f max=%.4f min=%.4f",
			sum/float64(len(rankings)),
			rankings[0].FinalScore,
			rankings[len(rankings)-1].FinalScore)
	}
}
