package services

import "github.com/SAP-F-2025/question-bank-service/internal/models"

type referenceService struct{}

// NewReferenceService returns the static authoring reference data service.
func NewReferenceService() ReferenceService {
	return &referenceService{}
}

func (s *referenceService) BloomTaxonomy() []BloomLevelInfo {
	return []BloomLevelInfo{
		{
			Level:           models.BloomRemember,
			Description:     "recall facts, terms, concepts",
			ExampleVerbs:    []string{"define", "list", "name", "identify", "state"},
			ExampleQuestion: "List the three states of matter.",
			WritingTip:      "Ask for specific facts with a single correct answer.",
		},
		{
			Level:           models.BloomUnderstand,
			Description:     "explain ideas, interpret meaning",
			ExampleVerbs:    []string{"explain", "summarize", "describe", "classify", "paraphrase"},
			ExampleQuestion: "Explain why water expands when it freezes.",
			WritingTip:      "Ask students to restate a concept in their own words.",
		},
		{
			Level:           models.BloomApply,
			Description:     "use knowledge in new situations",
			ExampleVerbs:    []string{"solve", "demonstrate", "calculate", "use", "implement"},
			ExampleQuestion: "Calculate the force needed to accelerate a 2 kg mass at 3 m/s².",
			WritingTip:      "Present a scenario the student has not seen before.",
		},
		{
			Level:           models.BloomAnalyze,
			Description:     "break down, compare, contrast",
			ExampleVerbs:    []string{"compare", "contrast", "differentiate", "examine", "categorize"},
			ExampleQuestion: "Compare how mitosis and meiosis handle chromosome count.",
			WritingTip:      "Ask for relationships between parts, not just the parts themselves.",
		},
		{
			Level:           models.BloomEvaluate,
			Description:     "justify, critique, make judgments",
			ExampleVerbs:    []string{"justify", "critique", "defend", "judge", "argue"},
			ExampleQuestion: "Argue for or against renewable energy subsidies, citing evidence.",
			WritingTip:      "Require a position supported by criteria or evidence.",
		},
		{
			Level:           models.BloomCreate,
			Description:     "design, construct, produce new work",
			ExampleVerbs:    []string{"design", "construct", "develop", "compose", "formulate"},
			ExampleQuestion: "Design an experiment to test how light affects plant growth.",
			WritingTip:      "Leave room for multiple valid answers and original work.",
		},
	}
}

func (s *referenceService) QuestionTypes() []QuestionTypeInfo {
	return []QuestionTypeInfo{
		{
			Type:      models.MultipleChoice,
			WhenToUse: "Checking recall and comprehension across many students quickly.",
			Format:    "A stem with one correct option and several plausible distractors.",
			Example:   "Which planet is closest to the sun? A) Venus B) Mercury C) Mars D) Earth",
		},
		{
			Type:      models.TrueFalse,
			WhenToUse: "Quick checks of factual statements or common misconceptions.",
			Format:    "A single declarative statement the student marks true or false.",
			Example:   "True or false: sound travels faster in water than in air.",
		},
		{
			Type:      models.ShortAnswer,
			WhenToUse: "Application and analysis where the answer is brief but not guessable.",
			Format:    "An open prompt answered in a word, phrase, or a few sentences.",
			Example:   "What is the derivative of x² with respect to x?",
		},
		{
			Type:      models.Essay,
			WhenToUse: "Evaluation and creation tasks requiring structured reasoning.",
			Format:    "An extended prompt answered in multiple paragraphs, graded by rubric.",
			Example:   "Discuss the causes and consequences of the Industrial Revolution.",
		},
	}
}
