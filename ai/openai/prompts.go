package openai

// selectionPrompt drives the coarse, title-level relevance pass. The user
// message is a JSON object with the condition and all catalog headers.
const selectionPrompt = `You are given a JSON object with:
- "user_medical_condition": a description of medical conditions
- "articles_headers": a list of article numbers and their headers from a medical reference corpus.

Your task:
Select all article numbers whose headers could reasonably correspond to the medical conditions described.

Rules:
- Use only the article numbers provided in "articles_headers".
- Do not invent new article numbers.
- Consider medical synonyms and related terminology.
- If there is reasonable medical relevance, include the article.
- If unsure but there is plausible connection, do not include it.
- Do not include articles that are clearly unrelated.

Output format:
Return ONLY valid JSON in the following format:

{ "articles_numbers": [N1, N2, ...] }

Do not include explanations or any additional text.
Order articles_numbers in the relevance order.`

// extractionPrompt drives the fine, full-text pass over one article. The
// user message is a JSON object with the condition and the article body.
const extractionPrompt = `You are given a JSON object with:
- "user_medical_condition": free-text description of conditions/symptoms
- "article_text": the full text of ONE article from a medical reference corpus

Task:
Decide whether the article_text contains criteria relevant to the user_medical_condition.
If yes, extract verbatim quotes (contiguous spans) from article_text that support the relevance.

Rules:
- Use ONLY article_text for quotes. Do not add or paraphrase any quoted content.
- Matching may use medical synonyms/related terms, but quotes must be verbatim from article_text.
- Extract the smallest contiguous span(s) that contain the relevant criterion.
- Do NOT stitch non-adjacent fragments into one quote.
- If uncertain but plausibly relevant, include the quote.
- If not relevant, return an empty quotes list.

Limits:
- Each quote must be at most 600 characters (trim to the minimal relevant part).

Output:
Return ONLY valid JSON:
{ "quotes": [...], "reasoning": "very short reasoning of relevance" }

If quotes is empty, set reasoning to empty string.
Reasoning must be in the same language as the article text.
Ensure JSON escaping is correct; newlines are allowed as \n.`
