package services

import "strings"

const questionsPerInterview = 4

// roleQuestions is keyed by the job title exactly as candidates pick it.
var roleQuestions = map[string][]string{
	"Customer Success Associate": {
		"Tell us about a time when you helped a customer achieve their goals.",
		"How would you handle a situation where a customer is considering canceling their subscription?",
		"Describe your approach to building long-term relationships with clients.",
		"What metrics do you think are most important for measuring customer success?",
	},
	"Sales Representative": {
		"Walk us through your typical sales process from lead to close.",
		"Tell us about a challenging deal you've closed and how you overcame obstacles.",
		"How do you handle rejection and maintain motivation in sales?",
		"Describe a time when you exceeded your sales targets.",
	},
	"Account Manager": {
		"How do you prioritize your accounts and manage multiple client relationships?",
		"Tell us about a time when you turned around an unhappy client.",
		"Describe your approach to identifying upselling opportunities.",
		"How do you handle competing priorities from different clients?",
	},
	"Business Development": {
		"How do you identify and qualify new business opportunities?",
		"Tell us about a partnership or deal you've developed from scratch.",
		"Describe your approach to market research and competitive analysis.",
		"How do you build relationships with potential partners or clients?",
	},
	"Customer Support": {
		"How do you handle an angry or frustrated customer?",
		"Tell us about a time when you went above and beyond for a customer.",
		"Describe your approach to troubleshooting technical issues.",
		"How do you ensure customer satisfaction while maintaining efficiency?",
	},
}

var genericQuestions = []string{
	"Tell us about yourself and your professional background.",
	"What motivates you in your career and what are you looking for in your next role?",
	"Describe a challenging situation you faced at work and how you handled it.",
	"Where do you see yourself in 5 years?",
	"What are your greatest strengths and how do they apply to this type of role?",
	"Tell us about a time when you had to learn something new quickly.",
	"How do you handle working under pressure or tight deadlines?",
	"Describe a time when you had to work with a difficult team member.",
}

type QuestionService interface {
	// QuestionsFor takes a comma separated list of job titles and returns
	// exactly four interview questions.
	QuestionsFor(jobTitles string) []string
}

type QuestionServiceImpl struct{}

func NewQuestionService() QuestionService {
	return &QuestionServiceImpl{}
}

func (s *QuestionServiceImpl) QuestionsFor(jobTitles string) []string {
	questions := []string{genericQuestions[0]}

	for _, title := range strings.Split(jobTitles, ",") {
		if role, ok := roleQuestions[strings.TrimSpace(title)]; ok {
			questions = append(questions, role[:2]...)
		}
	}

	if remaining := questionsPerInterview - len(questions); remaining > 0 {
		questions = append(questions, genericQuestions[1:1+remaining]...)
	}
	return questions[:questionsPerInterview]
}
