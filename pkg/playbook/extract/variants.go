package extract

import (
	"strings"

	"github.com/cognicore/playbook/pkg/playbook/records"
)

// MaxVariants bounds how many niche variants one task expands into.
const MaxVariants = 3

// ExpandVariants produces one copy of task per default niche of its platform
// (at most MaxVariants), skipping niches the platform's lookup table does not
// describe. Each copy gets the niche label prefixed to its title and the
// niche example appended to its description. When no variant can be made the
// task is returned unchanged.
func (e *Extractor) ExpandVariants(task records.Task) []records.Task {
	profile := e.cat.Platform(task.Platform)

	defaults := profile.DefaultNiches
	if len(defaults) > MaxVariants {
		defaults = defaults[:MaxVariants]
	}

	var variants []records.Task
	for _, name := range defaults {
		niche, ok := profile.Niche(name)
		if !ok {
			continue
		}
		v := cloneTask(task)
		v.ID = ""
		v.Niche = niche.Name
		v.Title = niche.Label + ": " + task.Title
		v.Description = strings.TrimSpace(task.Description + " " + niche.Example)
		variants = append(variants, v)
	}

	if len(variants) == 0 {
		return []records.Task{task}
	}
	return variants
}

func cloneTask(t records.Task) records.Task {
	c := t
	c.Instructions = append([]string(nil), t.Instructions...)
	c.PlatformSpecific = records.PlatformSpecific{
		Tips:           append([]string(nil), t.PlatformSpecific.Tips...),
		BestPractices:  append([]string(nil), t.PlatformSpecific.BestPractices...),
		CommonMistakes: append([]string(nil), t.PlatformSpecific.CommonMistakes...),
	}
	c.SuccessMetrics = append([]records.SuccessMetric(nil), t.SuccessMetrics...)
	c.Resources = append([]records.Resource(nil), t.Resources...)
	c.Synthesized = append([]string(nil), t.Synthesized...)
	return c
}
