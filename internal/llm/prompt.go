package llm

// MaxTextPromptInput caps how much source text is appended to TextPrompt.
// Longer inputs blow the context window of small local models.
const MaxTextPromptInput = 6000

const VisionPrompt = `
You are an expert at reading school/college timetable images.
Extract EVERY class from this timetable grid image.

CRITICAL RULES:
1. This is a GRID/TABLE. Read EVERY ROW and EVERY COLUMN cell.
2. Rows are usually days (Monday, Tuesday, Wednesday, Thursday, Friday).
3. Columns are usually time slots (e.g. 8:00-9:00, 9:00-10:00, etc.).
4. You MUST extract EVERY subject in EVERY cell, do NOT skip any.
5. Skip cells that say "Break" or "Lunch", those are NOT classes.
6. Convert ALL times to 24-hour format:
   - 1:00 PM or 1:00 after noon = 13:00
   - 2:00 PM = 14:00
   - 12:00 = 12:00 (noon)
   - If time slots go 8:00, 9:00, 10:00, 11:00, 12:00, 1:00, 2:00
     then 1:00 = 13:00 and 2:00 = 14:00 (afternoon)
7. Read the exact subject name shown (Maths, Biology, Physics, Chemistry, English, Social, etc.)
8. If a header row shows time ranges like "8:00-9:00", use those as start_time/end_time.

Return ONLY valid JSON:
{
  "entries": [
    {"subject": "Maths", "day": "Monday", "start_time": "08:00", "end_time": "09:00", "room": ""},
    {"subject": "Biology", "day": "Monday", "start_time": "09:00", "end_time": "10:00", "room": ""},
    {"subject": "Chemistry", "day": "Monday", "start_time": "10:00", "end_time": "11:00", "room": ""}
  ],
  "confidence": 0.9
}

IMPORTANT: A typical 5-day timetable with 5-6 slots per day should have 25-30 entries.
If you find fewer than 15 entries, re-read the image more carefully. You are probably missing rows or columns.
`

const TextPrompt = `
You are an expert at parsing school/college timetable data from OCR text.
The text below was extracted from a timetable image. It may be fragmented.

CRITICAL RULES:
1. The timetable is a GRID with days as rows and time slots as columns.
2. You MUST reconstruct EVERY class entry, do NOT skip any.
3. The header row contains time ranges like "8:00-9:00 9:00-10:00 10:00-11:00" etc.
4. Each day row lists subjects in order matching those time columns.
5. Skip "Break" or "Lunch", those are not classes.
6. Convert times to 24-hour format: 1:00 after 12:00 = 13:00, 2:00 = 14:00.
7. A typical 5-day timetable should have 25-30 entries.

Return ONLY valid JSON:
{
  "entries": [
    {"subject": "Maths", "day": "Monday", "start_time": "08:00", "end_time": "09:00", "room": ""},
    {"subject": "Biology", "day": "Monday", "start_time": "09:00", "end_time": "10:00", "room": ""}
  ],
  "confidence": 0.85
}

TEXT:
`

// BuildTextPrompt appends the source text, truncated to MaxTextPromptInput.
func BuildTextPrompt(sourceText string) string {
	if len(sourceText) > MaxTextPromptInput {
		sourceText = sourceText[:MaxTextPromptInput]
	}
	return TextPrompt + sourceText
}
