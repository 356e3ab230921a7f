package synth

import (
	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/rules"
)

// CategoryRules classifies task text. Content keywords are checked first, so
// "upload then analyze" is a content task.
var CategoryRules = rules.NewTable(records.CategoryContent,
	rules.Rule[records.Category]{Name: "content", Match: rules.Keywords("upload", "create", "post"), Result: records.CategoryContent},
	rules.Rule[records.Category]{Name: "technical", Match: rules.Keywords("setup", "set up", "configure", "install"), Result: records.CategoryTechnical},
	rules.Rule[records.Category]{Name: "community", Match: rules.Keywords("engage", "respond", "community"), Result: records.CategoryCommunity},
	rules.Rule[records.Category]{Name: "analytics", Match: rules.Keywords("analyze", "analyse", "metric", "data"), Result: records.CategoryAnalytics},
	rules.Rule[records.Category]{Name: "monetization", Match: rules.Keywords("monetiz", "monetis", "revenue", "sponsor"), Result: records.CategoryMonetization},
)

// Category classifies text. ok is false when the default was used.
func Category(text string) (records.Category, bool) {
	return CategoryRules.Classify(text)
}

var (
	uploadChecklist = []string{
		"Prepare your final video file and thumbnail",
		"Write an optimized title and description",
		"Add relevant tags and choose the right category",
		"Set visibility and schedule the publish time",
		"Publish and share the link with your audience",
	}
	engageChecklist = []string{
		"Open your comments and notifications",
		"Reply to new comments within the first hour",
		"Pin a comment that invites discussion",
		"Thank viewers who share or leave feedback",
		"Note recurring questions for future content",
	}
	analyzeChecklist = []string{
		"Open your analytics dashboard",
		"Review views, watch time and audience retention",
		"Compare results against the previous week",
		"Identify your best and worst performing content",
		"Write down one change to try next",
	}
	genericChecklist = []string{
		"Review what this task asks you to do",
		"Gather the tools and materials you need",
		"Work through the task step by step",
		"Check the result against the task goal",
		"Mark the task complete and note what you learned",
	}
)

// InstructionRules picks a fixed checklist for text with no explicit steps.
var InstructionRules = rules.NewTable(genericChecklist,
	rules.Rule[[]string]{Name: "upload", Match: rules.Keywords("upload"), Result: uploadChecklist},
	rules.Rule[[]string]{Name: "engage", Match: rules.Keywords("engage"), Result: engageChecklist},
	rules.Rule[[]string]{Name: "analyze", Match: rules.Keywords("analyze", "analyse"), Result: analyzeChecklist},
)

// Instructions returns a copy of the checklist matching text.
func Instructions(text string) []string {
	steps, _ := InstructionRules.Classify(text)
	return append([]string(nil), steps...)
}
