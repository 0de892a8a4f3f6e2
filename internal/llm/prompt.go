package llm

import "fmt"

const (
	cleanSystem = "You are a medical text processing expert. Clean and correct OCR text while preserving original medical information."

	extractSystem = "You are a medical data extraction expert. Extract structured information from medical text and return valid JSON."

	summarySystem = "You are a medical summarization expert. Generate concise, accurate clinical summaries for healthcare professionals."
)

func buildCleanPrompt(ocrText string) string {
	return fmt.Sprintf(`You are a medical language expert.

Clean the following OCR-extracted medical text:
- Fix spelling and grammar errors
- Correct medical terminology
- Remove OCR artifacts and noise
- Fix formatting issues
- Do NOT add new information
- Do NOT make assumptions
- Preserve clinical meaning exactly

OCR Text:
%s

Provide ONLY the cleaned text without any explanations or additional comments.`, ocrText)
}

func buildExtractPrompt(cleanedText string) string {
	return fmt.Sprintf(`You are a medical data extraction expert.

Extract the following information from the medical text below.
Return ONLY a valid JSON object with these fields (use null if information is not available):
{
    "patient_name": "string or null",
    "age": "string or null",
    "gender": "string or null",
    "symptoms": ["list of symptoms"],
    "diagnosis": "string or null",
    "medications": ["list of medications with dosage"],
    "test_results": ["list of test results"],
    "vital_signs": {},
    "doctor_notes": "string or null",
    "date_of_visit": "string or null"
}

Medical Text:
%s

Return ONLY the JSON object, no additional text.`, cleanedText)
}

func buildSummaryPrompt(cleanedText string) string {
	return fmt.Sprintf(`You are an assistant helping doctors review medical records.

Generate a concise medical summary from the following clinical text.

Focus on:
- Key symptoms and complaints
- Diagnosis (if mentioned)
- Medications prescribed
- Important test results and vital signs
- Critical observations
- Follow-up recommendations

Guidelines:
- Be concise and doctor-friendly
- Use medical terminology appropriately
- Do NOT make assumptions or new diagnoses
- Do NOT add information not present in the text
- Highlight only key medical findings
- Structure the summary clearly

Clinical Text:
%s

Provide a well-structured medical summary.`, cleanedText)
}

func buildFindingsPrompt(summaryText string) string {
	return fmt.Sprintf(`Extract 3-5 key medical findings from this summary as bullet points.

Summary:
%s

Provide ONLY the bullet points, one per line, starting with a dash (-).`, summaryText)
}
