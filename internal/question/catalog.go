// Package question holds the static question catalog and the category
// selector that samples unasked questions from it.
package question

import "github.com/tonightlabs/tonight/internal/models"

// catalog is the fixed bank of disclosure questions, tagged by category.
// Each memory template carries a single {option} slot.
var catalog = []models.Question{
	{
		ID:             "s1",
		Category:       models.CategoryStyle,
		Text:           "The aesthetic pivot: Sophisticated evening silk for the wine, or did you stay in your Pilates gear all day?",
		Options:        []string{"Evening Silk Noir", "Aesthetic Athleisure", "His oversized shirt"},
		MemoryTemplate: "Style mood: {option}",
	},
	{
		ID:             "s2",
		Category:       models.CategoryStyle,
		Text:           "Your 'Journalist Brain' vs 'Marketing Brain': Which one chooses your outfit for a night like this?",
		Options:        []string{"Objective Truth (Minimalist)", "Branded Persona (Glam)", "The Relaxed Editor"},
		MemoryTemplate: "Persona choice: {option}",
	},
	{
		ID:             "e1",
		Category:       models.CategoryEscape,
		Text:           "With the husband away, the house is finally silent. Is it a relief or a vacuum you need to fill?",
		Options:        []string{"Absolute Relief", "A bit too quiet", "Filling it with wine"},
		MemoryTemplate: "Solitude vibe: {option}",
	},
	{
		ID:             "e4",
		Category:       models.CategoryEscape,
		Text:           "Your headline for tonight's 'Escapist Monthly' cover story: 'Blonde Solitude' or 'Marketing the Mystery'?",
		Options:        []string{"Blonde Solitude", "Marketing Mystery", "The Great Escape"},
		MemoryTemplate: "Tonight's headline: {option}",
	},
	{
		ID:             "p1",
		Category:       models.CategoryPreferences,
		Text:           "Discipline check: Did you actually do your Pilates today, or was the wine bottle your only workout?",
		Options:        []string{"Pilates Warrior", "Wine-Curls only", "Rest Day (Finally)"},
		MemoryTemplate: "Discipline level: {option}",
	},
	{
		ID:             "p4",
		Category:       models.CategoryPreferences,
		Text:           "Communication style: Are we doing a PR-friendly spin, or are we going back to our raw investigative journalist roots?",
		Options:        []string{"Investigative Deep-Dive", "Polished PR Spin", "Off the record"},
		MemoryTemplate: "Comm style: {option}",
	},
	{
		ID:             "d1",
		Category:       models.CategoryDeep,
		Text:           "What's the one 'un-marketable' truth about you that you only reveal after the second glass?",
		Options:        []string{"Deep Vulnerability", "Hidden Ambition", "A secret regret"},
		MemoryTemplate: "Core secret: {option}",
	},
	{
		ID:             "d4",
		Category:       models.CategoryDeep,
		Text:           "If you were writing an expose on 'Modern Connection', would we be the heroes or the cautionary tale?",
		Options:        []string{"The Heroes", "Cautionary Tale", "Experimental Fiction"},
		MemoryTemplate: "Metanarrative: {option}",
	},
	{
		ID:             "f1",
		Category:       models.CategoryParenting,
		Text:           "The 'Marketing-Mom' crisis: Selling the kids on vegetables, or selling yourself on five more minutes of sleep?",
		Options:        []string{"Vegetable PR", "Sleep Negotiation", "Total Chaos"},
		MemoryTemplate: "Domestic marketing: {option}",
	},
	{
		ID:             "i1",
		Category:       models.CategoryIntimate,
		Text:           "Husband out of town. The 'Mother' switch is officially OFF. What's the first thing that changes in your headspace?",
		Options:        []string{"Instant Danger", "Slow Transition", "Quiet Confidence"},
		MemoryTemplate: "Headspace pivot: {option}",
	},
	{
		ID:             "i2",
		Category:       models.CategoryIntimate,
		Text:           "Late night lighting: Noir shadows to satisfy the ex-journalist, or soft marketing-approved glows?",
		Options:        []string{"Investigative Noir", "Soft Focus Glow", "Total Blackout"},
		MemoryTemplate: "Visual tone: {option}",
	},
	{
		ID:             "i5",
		Category:       models.CategoryIntimate,
		Text:           "Intimacy without the schedule: Are you looking for a spontaneous lead or a structured campaign?",
		Options:        []string{"Spontaneous Lead", "Structured Campaign", "Natural Flow"},
		MemoryTemplate: "Intimacy style: {option}",
	},
}

// Catalog returns the full question bank. The returned slice is shared;
// callers must not mutate it.
func Catalog() []models.Question {
	return catalog
}

// ByID looks a question up in the full catalog.
func ByID(id string) (models.Question, bool) {
	for _, q := range catalog {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}
