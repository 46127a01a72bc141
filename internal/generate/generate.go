// Package generate produces assessment questions from article text via an
// external generative-language service.
package generate

import "context"

// questionPrompt steers the model toward line-oriented question/answer
// output that the client can split on line breaks. No structure beyond that
// is parsed or validated here.
const questionPrompt = "Generate 5-7 short assessment questions and answers based on the following text. " +
	"Format each as: 'Question: ...? Answer: ...'. Avoid markdown."

// Generator is a minimal generation interface to allow pluggable providers.
type Generator interface {
	Questions(ctx context.Context, text string) (string, error)
}
