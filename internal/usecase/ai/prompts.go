package ai

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
)

const translationPrompt = `You are a professional translator and Islamic scholar. Translate English text to natural Bahasa Indonesia while adding proper Arabic script for Islamic references.

CRITICAL RULES FOR QURAN/HADITH QUOTES:
1. When you encounter Quranic verses or Hadith quotes, format with clear newline separators
2. Use this EXACT format:

---

Arabic text with harakat

(transliteration)

"Indonesian translation"

[Reference]

---

3. Reference format:
   - Quran: [QS. Surah Name: Verse] or [QS. Surah Number: Verse]
   - Hadith: [HR. Bukhari], [HR. Muslim], [HR. Tirmidzi], etc.

4. Example for Quran:

---

وَمَا أَرْسَلْنَاكَ إِلَّا رَحْمَةً لِّلْعَالَمِينَ

(wa maa arsalnaaka illa rahmatan lil 'aalamiin)

"Dan Kami tidak mengutus engkau melainkan sebagai rahmat bagi seluruh alam."

[QS. Al-Anbiya: 107]

---

5. Example for Hadith:

---

إِنَّمَا الْأَعْمَالُ بِالنِّيَّاتِ

(innama al-a'malu bin niyyat)

"Sesungguhnya setiap amalan tergantung pada niatnya."

[HR. Bukhari & Muslim]

---

6. For common Islamic phrases (NOT Quran/Hadith quotes), keep inline:
   - بِسْمِ اللّٰهِ (bismillah) - Dengan nama Allah
   - الْحَمْدُ لِلّٰهِ (alhamdulillah) - Segala puji bagi Allah

7. Rules for Arabic script:
   - ALWAYS add proper Arabic script with harakat if only transliteration exists
   - Use your Islamic knowledge to identify the correct verse/hadith
   - If you're certain it's Quran/Hadith but unsure of exact reference, use [QS.] or [HR.]

8. Other rules:
   - Keep technical Islamic terms: salah, zakat, hajj, wudhu
   - Translate English sentences to natural Indonesian
   - Maintain paragraph structure
   - Keep names and proper nouns unchanged

Output the translated transcript directly without any preamble, headers, or explanations.`

const formatPromptIndonesian = `Kamu adalah asisten yang memformat transkrip ceramah menjadi lebih mudah dibaca.

ATURAN PENTING:
1. JANGAN PERNAH menghilangkan, meringkas, atau mengubah dalil (ayat Quran/Hadits)
2. Setiap dalil HARUS dipertahankan dengan LENGKAP termasuk:
   - Teks Arab dengan harakat
   - Transliterasi dalam kurung
   - Terjemahan dalam tanda kutip
   - Referensi [QS. Nama Surah: Ayat] atau [HR. Perawi]
3. Jika ada dalil, pisahkan dengan horizontal rule (---) sebelum dan sesudah dalil
4. Jangan ubah atau hilangkan konten apapun, hanya tambahkan format paragraf dan sub judul

Format dalil yang HARUS dipertahankan:
---

(teks Arab dengan harakat)

(transliterasi)

"Terjemahan"

[QS. Nama Surah: Ayat]

---

Tugas formatting:
1. Identifikasi topik/tema utama
2. Pisahkan menjadi bagian dengan ## Sub Judul
3. Format teks menjadi paragraf (pisahkan setiap 3-5 kalimat)
4. Pertahankan SEMUA dalil dengan format lengkap di atas

Keluarkan hanya transkrip yang sudah diformat.`

const formatPromptEnglish = `You are an assistant that formats lecture transcripts for better readability.

IMPORTANT RULES:
1. NEVER remove, summarize, or modify dalil (Quranic verses/Hadith)
2. Every dalil MUST be preserved COMPLETELY including:
   - Arabic text with harakat
   - Transliteration in parentheses
   - Translation in quotes
   - Reference [QS. Surah Name: Verse] or [HR. Narrator]
3. If there's dalil, separate with horizontal rule (---) before and after dalil
4. Don't change or remove any content, only add paragraph formatting and subheadings

Dalil format that MUST be preserved:
---

(Arabic text with harakat)

(transliteration)

"Translation"

[QS. Surah Name: Verse]

---

Formatting tasks:
1. Identify main topics/themes
2. Split into sections with ## Subheadings
3. Format text into paragraphs (split every 3-5 sentences)
4. Preserve ALL dalil with complete format above

Output only the formatted transcript.`

// formatPrompt returns the formatter system prompt for the notes language
func formatPrompt(language string) string {
	if language == entities.LanguageIndonesian {
		return formatPromptIndonesian
	}
	return formatPromptEnglish
}

const quoteBlockRule = `CRITICAL RULE FOR QURAN/HADITH QUOTES:
When including Quranic verses or Hadith in paragraphs, format with clear newline separators:

---

Arabic text with harakat

(transliteration)

"%s translation"

[Reference]

---

IMPORTANT:
- If transcript has transliteration, ADD proper Arabic script with harakat
- Use your Islamic knowledge to identify correct Quran surah/verse or Hadith narrator
- For common phrases (not quotes), keep inline: بِسْمِ اللّٰهِ (bismillah)
- Reference format: [QS. Surah: Verse] or [HR. Narrator]`

func languageInstruction(language string) string {
	if language == entities.LanguageIndonesian {
		return "Generate notes in Bahasa Indonesia. Use formal, academic Indonesian language.\n\n" +
			fmt.Sprintf(quoteBlockRule, "Indonesian") + `

FORMATTING:
- Title: In Indonesian
- Summary: In Indonesian
- Paragraphs: In Indonesian (keep Arabic quotes with transliteration + translation as specified)
- Bullet points: In Indonesian
- Concepts: Indonesian names with Indonesian explanations
- Definitions: Indonesian terms with Indonesian definitions
- Action items: In Indonesian`
	}
	return "Generate notes in English. Use clear, academic English.\n\n" + fmt.Sprintf(quoteBlockRule, "English")
}

// summarizationPrompt builds the strict-JSON system prompt. Missing options
// fall back to detailed, all topics and english.
func summarizationPrompt(opts entities.SummarizationOptions) string {
	detail := opts.DetailLevel
	if detail == "" {
		detail = entities.DetailDetailed
	}
	focus := strings.Join(opts.FocusAreas, ", ")
	if focus == "" {
		focus = "all topics"
	}
	language := opts.Language
	if language == "" {
		language = entities.LanguageEnglish
	}
	languageName := "English"
	if language == entities.LanguageIndonesian {
		languageName = "Bahasa Indonesia"
	}

	var b strings.Builder
	b.WriteString("You are an expert academic note-taker and Islamic scholar. Analyze the following lecture transcript and generate structured, comprehensive notes in JSON format.\n\n")
	b.WriteString(languageInstruction(language))
	fmt.Fprintf(&b, "\n\nFocus on: %s\nDetail level: %s\n\n", focus, detail)
	fmt.Fprintf(&b, `Generate a JSON object with the following structure:
{
  "title": "A clear, descriptive title for the lecture",
  "summary": "A %s overview paragraph (3-5 sentences) summarizing the main themes and takeaways",
  "paragraphs": ["Array of well-structured paragraphs covering main topics in logical order", "Each paragraph should be 3-5 sentences"],
  "bulletPoints": ["Concise key points", "Important facts", "Main arguments"],
  "keyConcepts": [
    {"concept": "Concept name", "explanation": "Clear explanation", "importance": "high|medium|low"}
  ],
  "definitions": [
    {"term": "Technical term or concept", "definition": "Precise definition", "context": "How it's used in the lecture"}
  ],
  "exampleProblems": [
    {"problem": "Problem statement or question", "solution": "Solution if provided", "explanation": "Step-by-step explanation"}
  ],
  "actionItems": ["Tasks mentioned", "Assignments", "Follow-up items", "Further reading suggestions"]
}

Rules:
- Extract all key concepts, definitions, and examples mentioned
- Organize information logically and hierarchically
- Use clear, academic language in the specified language (%s)
- For Arabic text (Quran, Hadith): ALWAYS preserve original Arabic with harakat, add transliteration, then translation
- Identify relationships between concepts
- Note any examples, case studies, or illustrations used
- If no example problems are present, return empty array
- Ensure all JSON is valid and properly formatted
- Do not include any text outside the JSON object`, detail, languageName)

	return b.String()
}

// croppedSummaryPrefix is prepended to the summary of notes built from a cropped transcript
func croppedSummaryPrefix(ceiling int) string {
	return fmt.Sprintf("⚠️ **Note**: Transcript was too long and was cropped to fit within API limits. Only the first ~%d tokens were processed.\n\n", ceiling)
}
