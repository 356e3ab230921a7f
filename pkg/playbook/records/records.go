// Package records defines the four record kinds produced by the extraction
// pipeline: Tasks, Milestones, Templates and Tips.
package records

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind names one of the four record kinds.
type Kind string

const (
	KindTask      Kind = "task"
	KindMilestone Kind = "milestone"
	KindTemplate  Kind = "template"
	KindTip       Kind = "tip"
)

// AllKinds lists every record kind in aggregation order.
var AllKinds = []Kind{KindTask, KindMilestone, KindTemplate, KindTip}

// Difficulty is derived from a task's phase and week.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Category groups tasks by the kind of work involved.
type Category string

const (
	CategoryContent      Category = "content"
	CategoryTechnical    Category = "technical"
	CategoryCommunity    Category = "community"
	CategoryAnalytics    Category = "analytics"
	CategoryMonetization Category = "monetization"
)

// Synthesized field names recorded in Task.Synthesized.
const (
	FieldTimeEstimate   = "timeEstimate"
	FieldInstructions   = "instructions"
	FieldCategory       = "category"
	FieldSuccessMetrics = "successMetrics"
)

// Task is one actionable roadmap item.
type Task struct {
	ID               string           `json:"id" validate:"required"`
	RoadmapID        string           `json:"roadmapId" validate:"required"`
	Platform         string           `json:"platform" validate:"required"`
	Niche            string           `json:"niche"`
	Phase            int              `json:"phase" validate:"min=1"`
	Week             int              `json:"week" validate:"min=1"`
	DayRange         string           `json:"dayRange"`
	Title            string           `json:"title" validate:"required"`
	Description      string           `json:"description"`
	Instructions     []string         `json:"instructions" validate:"min=1"`
	TimeEstimate     int              `json:"timeEstimate" validate:"min=1"`
	Difficulty       Difficulty       `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
	Category         Category         `json:"category" validate:"oneof=content technical community analytics monetization"`
	PlatformSpecific PlatformSpecific `json:"platformSpecific"`
	SuccessMetrics   []SuccessMetric  `json:"successMetrics" validate:"min=1,dive"`
	Resources        []Resource       `json:"resources" validate:"max=5,dive"`
	OrderIndex       int              `json:"orderIndex"`

	// Synthesized lists the fields whose values were manufactured by a
	// fallback rather than read from the source text.
	Synthesized []string `json:"synthesized,omitempty"`
}

// IsSynthesized reports whether field was filled in by a fallback.
func (t *Task) IsSynthesized(field string) bool {
	for _, f := range t.Synthesized {
		if f == field {
			return true
		}
	}
	return false
}

// PlatformSpecific holds the advice lists attached to a task.
type PlatformSpecific struct {
	Tips           []string `json:"tips" validate:"max=5"`
	BestPractices  []string `json:"bestPractices" validate:"max=5"`
	CommonMistakes []string `json:"commonMistakes" validate:"max=5"`
}

// SuccessMetric is a measurable target for a task.
type SuccessMetric struct {
	Metric       string `json:"metric" validate:"required"`
	Target       string `json:"target" validate:"required"`
	HowToMeasure string `json:"howToMeasure"`
	Synthesized  bool   `json:"synthesized,omitempty"`
}

// Resource is a tool, template or guide a task refers to.
type Resource struct {
	Type    string `json:"type" validate:"oneof=tool template guide"`
	Title   string `json:"title" validate:"required"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
}

// RequirementType says how a milestone is unlocked.
type RequirementType string

const (
	RequirementTaskCompletion    RequirementType = "task_completion"
	RequirementMetricAchievement RequirementType = "metric_achievement"
	RequirementTimeBased         RequirementType = "time_based"
)

// RewardType says what completing a milestone grants.
type RewardType string

const (
	RewardBadge         RewardType = "badge"
	RewardFeatureUnlock RewardType = "feature_unlock"
)

// CelebrationType says how a reached milestone is shown.
type CelebrationType string

const (
	CelebrationModal        CelebrationType = "modal"
	CelebrationConfetti     CelebrationType = "confetti"
	CelebrationNotification CelebrationType = "notification"
)

// Milestone is a goal a creator works towards.
type Milestone struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Requirement Requirement `json:"requirement"`
	Reward      Reward      `json:"reward"`
	Celebration Celebration `json:"celebration"`
	// Platform is nil for cross-platform milestones.
	Platform   *string `json:"platform"`
	OrderIndex int     `json:"orderIndex"`
}

// Requirement is the condition that completes a milestone.
type Requirement struct {
	Type        RequirementType `json:"type" validate:"oneof=task_completion metric_achievement time_based"`
	Value       string          `json:"value" validate:"required"`
	Synthesized bool            `json:"synthesized,omitempty"`
}

// Reward is granted when a milestone completes.
type Reward struct {
	Type  RewardType `json:"type" validate:"oneof=badge feature_unlock"`
	Value string     `json:"value" validate:"required"`
}

// Celebration is shown when a milestone completes.
type Celebration struct {
	Type        CelebrationType `json:"type" validate:"oneof=modal confetti notification"`
	Message     string          `json:"message"`
	SharePrompt string          `json:"sharePrompt,omitempty"`
}

// TemplateCategory is the asset a template produces.
type TemplateCategory string

const (
	TemplateVideoScript   TemplateCategory = "video_script"
	TemplateThumbnail     TemplateCategory = "thumbnail"
	TemplateDescription   TemplateCategory = "description"
	TemplateSocialMedia   TemplateCategory = "social_media"
	TemplateChannelAssets TemplateCategory = "channel_assets"
)

// TemplateType is the role of a template within that asset.
type TemplateType string

const (
	TemplateHook         TemplateType = "hook"
	TemplateOutro        TemplateType = "outro"
	TemplateStructure    TemplateType = "structure"
	TemplateCallToAction TemplateType = "call_to_action"
	TemplateGeneral      TemplateType = "general"
)

// Template is a reusable content skeleton.
type Template struct {
	ID        string           `json:"id" validate:"required"`
	Category  TemplateCategory `json:"category" validate:"oneof=video_script thumbnail description social_media channel_assets"`
	Type      TemplateType     `json:"type" validate:"oneof=hook outro structure call_to_action general"`
	Title     string           `json:"title" validate:"required"`
	Content   TemplateContent  `json:"content"`
	Variables []string         `json:"variables"`
	Platform  string           `json:"platform"`
	Niche     string           `json:"niche"`
	IsPublic  bool             `json:"isPublic"`
	Uses      int              `json:"uses" validate:"min=0"`
	Rating    *float64         `json:"rating"`
}

// TemplateContent is the body of a template.
type TemplateContent struct {
	Structure string   `json:"structure"`
	Sections  []string `json:"sections"`
	Examples  []string `json:"examples"`
}

// Tip is a standalone piece of advice.
type Tip struct {
	ID         string     `json:"id" validate:"required"`
	Title      string     `json:"title" validate:"required,max=50"`
	Content    string     `json:"content" validate:"required"`
	Category   string     `json:"category"`
	Platform   *string    `json:"platform"`
	Niche      *string    `json:"niche"`
	Difficulty Difficulty `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
	Tags       []string   `json:"tags" validate:"max=5"`
	Source     string     `json:"source"`
	IsActive   bool       `json:"isActive"`
}

var validate = validator.New()

// Validate checks the record against its field contracts.
func (t *Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("task %s: %w", t.ID, err)
	}
	return nil
}

// Validate checks the record against its field contracts.
func (m *Milestone) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("milestone %s: %w", m.ID, err)
	}
	return nil
}

// Validate checks the record against its field contracts.
func (t *Template) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("template %s: %w", t.ID, err)
	}
	return nil
}

// Validate checks the record against its field contracts.
func (t *Tip) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("tip %s: %w", t.ID, err)
	}
	return nil
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
