// Package schema defines the structured-output shapes the pipeline asks
// models to produce, and the response formats that enforce them.
package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var (
	CompanyAnalysisSchema = generateSchema[CompanyAnalysis]()
	BrandProfileSchema    = generateSchema[BrandProfile]()
)

// CompanyAnalysisResponseFormat constrains a completion to the
// CompanyAnalysis shape.
func CompanyAnalysisResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return structuredOutputs("company_analysis",
		"Structured analysis of a company extracted from research notes",
		CompanyAnalysisSchema)
}

// BrandProfileResponseFormat constrains a completion to the BrandProfile
// shape.
func BrandProfileResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return structuredOutputs("brand_profile",
		"Brand personality, tone, and values distilled from company research",
		BrandProfileSchema)
}

func structuredOutputs(name, description string, schema any) openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}
