// Package buckets assigns raw skill names to fixed semantic buckets.
package buckets

import (
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

// priority is the order buckets are tested in; the first bucket whose keyword
// set matches wins. Technical before Analytics so that e.g. "data engineering"
// lands in Technical while "data analysis" lands in Analytics.
var priority = []types.Bucket{
	types.BucketTechnical,
	types.BucketAnalytics,
	types.BucketManagement,
	types.BucketDomainKnowledge,
	types.BucketSoftSkills,
}

// keywords maps each bucket to lowercase substrings tested against the
// skill name plus description.
var keywords = map[types.Bucket][]string{
	types.BucketTechnical: {
		"programming", "software", "developer", "development", "engineering",
		"python", "java", "golang", " go ", "c++", "c#", "javascript", "typescript",
		"sql", "database", "cloud", "aws", "azure", "gcp", "kubernetes", "docker",
		"linux", "devops", " api", "backend", "frontend", "full stack", "fullstack",
		" git", "ci/cd", "terraform", "microservice", "infrastructure", "security",
		"network", "embedded", "mobile", "android", "ios", "react", "angular",
		"vue", "node", "rust", "scala", "kotlin", "testing", "automation",
		"kafka", "airflow", "redis", "elasticsearch", "grpc", " rest ",
	},
	types.BucketAnalytics: {
		"analytics", "analysis", "analyst", "data science", "machine learning",
		"deep learning", "statisti", " ml ", " ai ", "artificial intelligence",
		"tableau", "power bi", "powerbi", "excel", "pandas", "numpy", "etl",
		"big data", "spark", "hadoop", "visualization", "reporting", "metrics",
		"forecasting", "modelling", "modeling", "experiment",
	},
	types.BucketManagement: {
		"management", "manager", "leadership", "lead", "scrum", "agile",
		"kanban", "project", "product owner", "stakeholder", "budget",
		"planning", "roadmap", "strategy", "coordination", "supervision",
		"mentoring", "coaching", "hiring", "team building", "delivery",
	},
	types.BucketDomainKnowledge: {
		"finance", "financial", "banking", "insurance", "healthcare", "medical",
		"pharma", "legal", "compliance", "regulatory", "gdpr", "accounting",
		"logistics", "supply chain", "manufacturing", "retail", "e-commerce",
		"ecommerce", "telecom", "energy", "automotive", "real estate",
		"marketing", "sales", "procurement", " hr ", "payroll", " erp", " sap",
	},
	types.BucketSoftSkills: {
		"communication", "teamwork", "collaboration", "presentation",
		"negotiation", "problem solving", "problem-solving", "critical thinking",
		"creativity", "adaptability", "time management", "organization",
		"interpersonal", "customer service", "empathy", "conflict",
		"self-motivated", "detail oriented", "attention to detail",
		"english", "german", "french", "spanish", "language",
	},
}

// Categorize maps a skill name (and optional description) to a bucket.
// It is pure and total: identical input always yields the same bucket, and
// unmatched skills land in BucketOther.
func Categorize(name, description string) types.Bucket {
	// Pad with spaces so word-ish keywords like " go " can match at the edges.
	text := " " + strings.ToLower(name+" "+description) + " "

	for _, bucket := range priority {
		for _, keyword := range keywords[bucket] {
			if strings.Contains(text, keyword) {
				return bucket
			}
		}
	}

	return types.BucketOther
}
