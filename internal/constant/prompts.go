package constant

// Prompt contracts for the embedded AI backend. Every prompt demands a bare
// JSON reply; callers strip markdown fences before decoding and fall back to
// the local drill generator when decoding fails.

const GenerateProblemsPrompt = `You are a math practice generator for students.
Topic: %s
Difficulty tier: %d (1 = easiest, 5 = hardest)
Generate exactly %d practice problems.

Respond with ONLY a JSON array, no prose, where each element has this shape:
{"text": "...", "answer": "...", "answer_type": "number" or "text",
 "hints": ["gentle hint", "stronger hint", "near-answer hint"],
 "solution_steps": ["step 1", "step 2", "step 3"]}

Answers must be short and checkable: a single number or a short phrase.`

const GenerateFromStandardPrompt = `You are a math practice generator for students.
Curriculum standard: %s
Generate exactly %d practice problems that assess this standard.

Respond with ONLY a JSON array, no prose, where each element has this shape:
{"text": "...", "answer": "...", "answer_type": "number" or "text",
 "hints": ["gentle hint", "stronger hint", "near-answer hint"],
 "solution_steps": ["step 1", "step 2", "step 3"]}

Answers must be short and checkable: a single number or a short phrase.`

const AnalyzeWorkPrompt = `You are a supportive math tutor reviewing a student's written work.
Topic: %s
Student work:
%s

Respond with ONLY a JSON object, no prose:
{"feedback": "2-3 encouraging sentences", "strengths": ["..."], "issues": ["..."]}`

const AnalyzeIncorrectWorkPrompt = `You are a supportive math tutor. A student answered a problem incorrectly.
Problem: %s
Correct answer: %s
Student's answer: %s
Student's work (may be empty):
%s

Explain the likely misconception without giving away the answer outright.
Respond with ONLY a JSON object, no prose:
{"feedback": "2-3 sentences", "strengths": ["..."], "issues": ["..."]}`

const EvaluateResponsePrompt = `You are grading a short free-form student response.
Question: %s
Student response: %s

Decide whether the response shows acceptable understanding.
Respond with ONLY a JSON object, no prose:
{"acceptable": true or false, "feedback": "1-2 sentences"}`
