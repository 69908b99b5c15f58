// Package corpus provides the built-in demo dataset of technical tips.
package corpus

import (
	"strconv"

	"github.com/neuralquery/neuralquery/internal/domain"
)

// TechTips returns the demo corpus. IDs are stable (doc_0..doc_N) so
// re-running the indexer overwrites records instead of duplicating them.
func TechTips() []domain.Document {
	tips := []struct {
		text     string
		category string
	}{
		{"Use Docker multi-stage builds to reduce image size by separating build and runtime dependencies.", "Docker"},
		{"Leverage Python's context managers with 'with' statements to ensure proper resource cleanup and exception handling.", "Python"},
		{"Configure AWS Lambda with appropriate memory allocation - more memory also increases CPU proportionally.", "AWS"},
		{"Use Docker Compose for local development to orchestrate multiple containers and manage dependencies easily.", "Docker"},
		{"Implement async/await in Python for I/O-bound operations to improve concurrency and performance.", "Python"},
		{"Set up AWS CloudWatch alarms to monitor Lambda function errors, duration, and throttles proactively.", "AWS"},
		{"Optimize Docker images by using .dockerignore to exclude unnecessary files and reduce build context size.", "Docker"},
		{"Use Python's dataclasses or Pydantic models for type-safe data validation and serialization in APIs.", "Python"},
		{"Implement AWS S3 lifecycle policies to automatically transition objects to cheaper storage classes over time.", "AWS"},
		{"Use Docker health checks to ensure containers are running correctly and enable automatic restart on failure.", "Docker"},
		{"Leverage Python's type hints with mypy for static type checking to catch errors before runtime.", "Python"},
		{"Configure AWS VPC endpoints for private connectivity to S3 and other services without internet gateway.", "AWS"},
		{"Use Docker volumes for persistent data storage that survives container restarts and updates.", "Docker"},
		{"Implement Python logging with proper levels (DEBUG, INFO, WARNING, ERROR) for better observability.", "Python"},
		{"Use AWS IAM roles instead of access keys for EC2 instances and Lambda functions for better security.", "AWS"},
		{"Leverage Docker layer caching by ordering Dockerfile commands from least to most frequently changing.", "Docker"},
		{"Use Python's pathlib instead of os.path for more readable and cross-platform file path operations.", "Python"},
		{"Implement AWS CloudFormation or Terraform for Infrastructure as Code to version control your infrastructure.", "AWS"},
		{"Use Docker secrets management for sensitive data like API keys instead of hardcoding them in images.", "Docker"},
		{"Leverage Python's functools.lru_cache decorator for memoization to cache expensive function results.", "Python"},
	}

	docs := make([]domain.Document, len(tips))
	for i, tip := range tips {
		docs[i] = domain.Document{
			ID:       "doc_" + strconv.Itoa(i),
			Text:     tip.text,
			Metadata: map[string]string{"category": tip.category},
		}
	}
	return docs
}
