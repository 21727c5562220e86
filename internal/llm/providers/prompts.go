package providers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"jobtrail/pkg/models"
	"jobtrail/pkg/utils"
)

// maxBodyChars bounds how much of the email body is sent to the oracle
const maxBodyChars = 3000

// buildExtractionPrompt creates the prompt asking the oracle to pull
// structured job fields out of an email.
func buildExtractionPrompt(input models.ExtractionRequest) string {
	return fmt.Sprintf(`You are an expert at extracting structured job information from emails. Extract job application information from this email and return ONLY a JSON object.

EMAIL CONTENT:
Subject: %s
Preview: %s
Body: %s

EXTRACTION RULES:
1. This might be a follow-up email about a job (e.g. "viewed", "interview")
2. Extract the ACTUAL company name, not generic terms like "employer" or "recruiter"
3. Extract the SPECIFIC job title/position
4. For "viewed" emails, the company and position should match the original application
5. Look for company names after phrases like "at", "with", "from", or before "viewed"
6. Look for job titles after "for", "position", "role", or in quotes

REQUIRED JSON FORMAT:
{
  "company": "Actual company name (required)",
  "position": "Specific job title (required)",
  "location": "City, State or 'Remote' or country",
  "salary": "Salary range if mentioned",
  "work_mode": "remote" | "hybrid" | "onsite" (if mentioned),
  "employment_type": "full_time" | "part_time" | "contract" | "temporary" | "internship" (if mentioned),
  "industry": "Industry sector if identifiable",
  "company_size": "Company size if mentioned",
  "linkedin_url": "LinkedIn job posting URL if present"
}

Examples of correct extraction:
- "Akkodis viewed your application" -> company: "Akkodis"
- "Your application for MS Fabric Data Specialist" -> position: "MS Fabric Data Specialist"
- "Application viewed by employer at Google" -> company: "Google"

Return ONLY the JSON object, no explanation.`,
		input.Subject, input.Snippet, utils.Truncate(input.Body, maxBodyChars))
}

// buildScoringPrompt creates the prompt asking the oracle to score an
// application against the candidate profile.
func buildScoringPrompt(rec *models.ApplicationRec, profile models.CandidateProfile) string {
	skills := "Not specified"
	if len(profile.Skills) > 0 {
		skills = strings.Join(profile.Skills, ", ")
	}

	return fmt.Sprintf(`You are an expert career advisor and job matching specialist. Analyze this job application match.

JOB DETAILS:
Company: %s
Position: %s
Location: %s
Salary: %s
Work Mode: %s

CANDIDATE PROFILE:
%s

CANDIDATE SKILLS:
%s

Provide a realistic match analysis in the following JSON format:
{
  "overall": <0-100 overall match score>,
  "skills": <0-100 skills match score>,
  "experience": <0-100 experience match score>,
  "location": <0-100 location match score>,
  "salary": <0-100 salary match score>,
  "reasons": [<array of 2-3 key reasons for the match score>],
  "suggestions": [<array of 2-3 suggestions to improve candidacy>]
}

Be realistic and critical in your assessment. Respond ONLY with the JSON object, no additional text.`,
		rec.Company, rec.Position, rec.Location,
		utils.GetStringOrDefault(rec.SalaryRange, "Not specified"),
		utils.GetStringOrDefault(string(rec.WorkLocation), "Not specified"),
		profile.Resume, skills)
}

// stripCodeFences removes markdown code blocks the oracle sometimes
// wraps around its JSON output.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// parseExtractedJob deserializes an oracle extraction response and
// applies the required-field sentinels.
func parseExtractedJob(responseText string) (*models.ExtractedJob, error) {
	cleaned := stripCodeFences(responseText)

	var extracted models.ExtractedJob
	if err := json.Unmarshal([]byte(cleaned), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w, response: %s", err, cleaned)
	}

	if extracted.Company == "" {
		extracted.Company = models.UnknownCompany
	}
	if extracted.Position == "" {
		extracted.Position = models.UnknownPosition
	}
	if extracted.Location == "" {
		extracted.Location = models.DefaultLocation
	}

	return &extracted, nil
}

// parseMatchScore deserializes an oracle scoring response
func parseMatchScore(responseText string) (*models.MatchScore, error) {
	cleaned := stripCodeFences(responseText)

	var score models.MatchScore
	if err := json.Unmarshal([]byte(cleaned), &score); err != nil {
		return nil, fmt.Errorf("failed to parse scoring response: %w, response: %s", err, cleaned)
	}

	score.CalculatedAt = time.Now()
	return &score, nil
}
