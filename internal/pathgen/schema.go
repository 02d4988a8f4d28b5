package pathgen

import "github.com/abhisek/pathweaver/internal/llm"

// PathOutlineSchema defines the JSON schema for the structural outline:
// 2-4 units, each with 3-5 levels of 3-5 lessons, every lesson carrying a
// machine-searchable query hint.
var PathOutlineSchema = &llm.Schema{
	Name:        "path-outline",
	Description: "A hierarchical curriculum outline of units, levels, and lessons for a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"units": map[string]any{
				"type":     "array",
				"minItems": 2,
				"maxItems": 4,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Unit title (2-6 words)",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "One-sentence summary of what the unit covers",
						},
						"color": map[string]any{
							"type":        "string",
							"description": "Display color as a hex string, e.g. #4F46E5",
						},
						"bossChallenge": map[string]any{
							"type":        "string",
							"description": "A capstone task that exercises the whole unit",
						},
						"levels": map[string]any{
							"type":     "array",
							"minItems": 3,
							"maxItems": 5,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"title": map[string]any{
										"type":        "string",
										"description": "Level title (2-6 words)",
									},
									"description": map[string]any{
										"type":        "string",
										"description": "One-sentence summary of the level",
									},
									"icon": map[string]any{
										"type":        "string",
										"description": "A single emoji representing the level",
									},
									"challengeProject": map[string]any{
										"type":        "string",
										"description": "A small hands-on project for the level",
									},
									"lessons": map[string]any{
										"type":     "array",
										"minItems": 3,
										"maxItems": 5,
										"items": map[string]any{
											"type": "object",
											"properties": map[string]any{
												"title": map[string]any{
													"type":        "string",
													"description": "Lesson title (3-8 words)",
												},
												"description": map[string]any{
													"type":        "string",
													"description": "What the learner gets from this lesson",
												},
												"searchHint": map[string]any{
													"type":        "string",
													"description": "A short video search query for this exact lesson",
												},
											},
											"required":             []any{"title", "description", "searchHint"},
											"additionalProperties": false,
										},
									},
								},
								"required":             []any{"title", "description", "icon", "challengeProject", "lessons"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"title", "description", "color", "bossChallenge", "levels"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"units"},
		"additionalProperties": false,
	},
}

// QuickDiveSchema defines the JSON schema for flat resource suggestions.
var QuickDiveSchema = &llm.Schema{
	Name:        "quick-dive-suggestions",
	Description: "A flat list of curated learning resource suggestions for a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 20,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Resource title",
						},
						"kind": map[string]any{
							"type": "string",
							"enum": []any{"Video", "Article", "Course", "Book", "Podcast"},
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Why this resource is worth the learner's time",
						},
						"searchHint": map[string]any{
							"type":        "string",
							"description": "A short search query to locate this resource",
						},
					},
					"required":             []any{"title", "kind", "description", "searchHint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"suggestions"},
		"additionalProperties": false,
	},
}
