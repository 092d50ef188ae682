package onboarding

import (
	"math"
	"slices"
	"strings"
)

// StageComplete reports whether every required item in the slice is
// completed. A stage with no required items counts as complete.
func StageComplete(items []ChecklistItem) bool {
	for _, item := range items {
		if item.Required && !item.Completed {
			return false
		}
	}
	return true
}

// OverallPercent is the share of required items completed across all
// stages, rounded to the nearest integer. With no required items the
// checklist is trivially satisfied and reports 100.
func OverallPercent(items []ChecklistItem) int {
	var total, completed int
	for _, item := range items {
		if !item.Required {
			continue
		}
		total++
		if item.Completed {
			completed++
		}
	}
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// deriveStatus recomputes the working status from checklist state.
// Submit and decision states are set explicitly, never derived.
func deriveStatus(current Status, items []ChecklistItem) Status {
	switch current {
	case StatusPendingApproval, StatusApproved, StatusRejected:
		return current
	}

	anyToggled := false
	for _, item := range items {
		if item.Completed {
			anyToggled = true
			break
		}
	}

	switch {
	case allStagesComplete(items):
		return StatusCompleted
	case anyToggled:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

func allStagesComplete(items []ChecklistItem) bool {
	byStage := groupByStage(items)
	for _, stageItems := range byStage {
		if !StageComplete(stageItems) {
			return false
		}
	}
	return true
}

// BuildProgress assembles the derived view from the record and its
// checklist, ordering stages by the onboarding template.
func BuildProgress(record Record, items []ChecklistItem) Progress {
	byStage := groupByStage(items)

	stages := make([]string, 0, len(byStage))
	for stage := range byStage {
		stages = append(stages, stage)
	}
	slices.SortFunc(stages, compareStages)

	progress := Progress{
		ContractorID:    record.ContractorID,
		Status:          record.Status,
		OverallPercent:  OverallPercent(items),
		Stages:          make([]StageProgress, 0, len(stages)),
		SubmittedAt:     record.SubmittedAt,
		DecidedAt:       record.DecidedAt,
		DecidedBy:       record.DecidedBy,
		RejectionReason: record.RejectionReason,
	}

	for _, stage := range stages {
		stageItems := byStage[stage]
		sp := StageProgress{
			Stage:    stage,
			Title:    stageTitle(stage),
			Complete: StageComplete(stageItems),
			Items:    stageItems,
		}
		for _, item := range stageItems {
			if !item.Required {
				continue
			}
			sp.RequiredItems++
			if item.Completed {
				sp.CompletedItems++
			}
		}
		progress.Stages = append(progress.Stages, sp)
	}

	return progress
}

func groupByStage(items []ChecklistItem) map[string][]ChecklistItem {
	byStage := make(map[string][]ChecklistItem)
	for _, item := range items {
		byStage[item.Stage] = append(byStage[item.Stage], item)
	}
	return byStage
}

// compareStages orders known template stages by position; anything else
// sorts after them alphabetically.
func compareStages(a, b string) int {
	aIdx, aKnown := stageOrder[a]
	bIdx, bKnown := stageOrder[b]
	switch {
	case aKnown && bKnown:
		return aIdx - bIdx
	case aKnown:
		return -1
	case bKnown:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
