package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/outlinedev/outline/internal/ai"
	"github.com/outlinedev/outline/internal/document"
	appErr "github.com/outlinedev/outline/internal/pkg/errors"
)

type paperSection struct {
	ID        int
	Name      string
	Slovenian string
	System    string
	User      string
}

var paperSections = []paperSection{
	{
		ID: 1, Name: "Outline", Slovenian: "Oris",
		System: `You are "Aithor Outline Creator", an academic writing assistant.`,
		User: `Generate a hierarchical outline (~250–300 words) for a research article on <TOPIC> that follows this structure.
Use Calibri-equivalent 12 pt and Arabic numbering exactly as below; Slovenian headings if LANG = sl, English headings if LANG = en.
Give ONE summary sentence under each heading about <TOPIC>.

Required major headings (each starts new section):
1  UVOD (or INTRODUCTION if English)
2  TEORETSKI PREGLED PODROČJA (or LITERATURE REVIEW if English)
 2.1  Podpoglavje 1 (or Subsection 1 if English)
 2.2  Podpoglavje 2 (or Subsection 2 if English)
 2.3  Podpoglavje 3 (or Subsection 3 if English)
3  METODOLOGIJA (or METHODOLOGY if English)
4  REZULTATI (or RESULTS if English)
 4.1  Podpoglavje 1 (or Subsection 1 if English)
 4.2  Podpoglavje 2 (or Subsection 2 if English)
5  DISKUSIJA (or DISCUSSION if English)
6  ZAKLJUČEK (or CONCLUSION if English)
7  LITERATURA IN VIRI (or REFERENCES if English)

Return only the outline with topic-specific content for: <TOPIC>`,
	},
	{
		ID: 2, Name: "Introduction", Slovenian: "Uvod",
		System: "You are an academic author drafting the Introduction.",
		User: `Write section 1 UVOD in <LANG>, FOUR paragraphs, total ≈ 350 words for the topic: <TOPIC>.
Paragraphs:
1. Broad → narrow field; importance.
2. Problem statement & research questions / goals.
3. What this project does to address them.
4. Roadmap of the paper.
Formatting: Calibri 12 pt, 1.5 line spacing, no sub-headings.
Embed in-text citations with <CITATION_STYLE> placeholders (e.g., (Author, Year) or [n]).
Do **not** produce the reference list yet.`,
	},
	{
		ID: 3, Name: "Literature Review", Slovenian: "Teoretski pregled področja",
		System: "You are an academic literature-review writer.",
		User: `Compose section 2 TEORETSKI PREGLED PODROČJA (~1 200 words) in <LANG> for the topic: <TOPIC>.
Write 2–3 robust paragraphs per sub-chapter (2.1–2.3) following the provided outline structure.
• Summarise 5–10 scholarly sources (≥ 1 non-web).
• Show how each source frames or justifies our work on <TOPIC>.
• Cite using <CITATION_STYLE>.
• If you reference a figure, announce it and add caption placeholder: "Slika 1: … [n]".
Paraphrase—no plagiarism; keep logical flow.`,
	},
	{
		ID: 4, Name: "Methodology", Slovenian: "Metodologija",
		System: "You are documenting research methodology.",
		User: `Draft section 3 METODOLOGIJA (~700 words) in <LANG> for the research topic: <TOPIC>.
Paragraph order:
1. Restate problem + goals/hypotheses for <TOPIC>.
2. Describe methods, procedures, and tools (languages, frameworks, DBs, libraries) with one-sentence rationale each.
3-n. Step-by-step process: data acquisition, processing, testing, evaluation metrics.
Final paragraph: study limitations and key assumptions.
Cite sources for methods/tools as needed with <CITATION_STYLE>.`,
	},
	{
		ID: 5, Name: "Results", Slovenian: "Rezultati",
		System: "You are reporting research results objectively.",
		User: `Produce section 4 REZULTATI (~1 100 words) in <LANG> for the research on <TOPIC>, split into 4.1 and 4.2.
For each sub-chapter:
• Start with a brief aim statement related to <TOPIC>.
• Present core findings (figures, tables, numerical results, screenshots descriptions).
• Introduce every figure/table in text and give caption placeholders ("Tabela 1: …").
No interpretation—save that for Discussion.
Cite external data sources if used.`,
	},
	{
		ID: 6, Name: "Discussion", Slovenian: "Diskusija",
		System: "You are analysing and interpreting results.",
		User: `Write section 5 DISKUSIJA (~450 words, no sub-headings) in <LANG> for the research on <TOPIC>.
Tasks:
• Interpret key findings from section 4—explain WHY these results occurred for <TOPIC>.
• Compare with expectations and prior literature about <TOPIC>.
• Note limitations, anomalies, and suggest improvements or future work for <TOPIC>.
Use critical reflective tone; cite sources with <CITATION_STYLE>.`,
	},
	{
		ID: 7, Name: "Conclusion", Slovenian: "Zaključek",
		System: "You are summarising the study.",
		User: `Create section 6 ZAKLJUČEK (~450 words) in <LANG> for the research on <TOPIC>.
Include four concise paragraphs:
1. Recap aims & methods for studying <TOPIC>.
2. Main contributions / findings about <TOPIC>.
3. Practical implications of this <TOPIC> research.
4. Concrete future research directions for <TOPIC>.
Avoid introducing new citations unless essential.`,
	},
	{
		ID: 8, Name: "References", Slovenian: "Literatura in viri",
		System: "You are a reference-list formatter.",
		User: `Compile the full reference list for every in-text citation, formatted in <CITATION_STYLE>.
List only works actually cited; sort alphabetically (APA) or numerically (IEEE).
Include all metadata (authors, year, title, source, URL + access date for web items).
Return nothing except the formatted list.`,
	},
}

type GenerateParams struct {
	Topic         string `json:"topic"`
	Language      string `json:"language"`
	CitationStyle string `json:"citation_style"`
}

type generatorRun struct {
	id       uint64
	params   GenerateParams
	sections map[int]string
	next     int
	paused   bool
}

type GeneratorStatus struct {
	Topic      string         `json:"topic"`
	Next       int            `json:"next"`
	Paused     bool           `json:"paused"`
	Progress   float64        `json:"progress"`
	Done       bool           `json:"done"`
	Sections   map[int]string `json:"sections"`
	SectionIDs map[int]string `json:"section_names"`
}

type SectionResult struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Text     string  `json:"text"`
	Progress float64 `json:"progress"`
	Done     bool    `json:"done"`
}

// GeneratorService drives the eight-step paper pipeline: the outline is
// generated first and threaded into every later prompt; methodology onward
// additionally sees the already generated sections. One run per document.
type GeneratorService struct {
	mu       sync.Mutex
	runs     map[string]*generatorRun
	lastRun  uint64
	provider ai.IProvider
	model    string
}

func NewGeneratorService(provider ai.IProvider, model string) *GeneratorService {
	return &GeneratorService{
		runs:     make(map[string]*generatorRun),
		provider: provider,
		model:    model,
	}
}

func (s *GeneratorService) Start(ctx context.Context, docID string, params GenerateParams) error {
	params.Topic = strings.TrimSpace(params.Topic)
	if params.Topic == "" {
		return appErr.ErrInvalid
	}
	if params.Language == "" {
		params.Language = "sl"
	}
	if params.CitationStyle == "" {
		params.CitationStyle = "APA"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun++
	s.runs[docID] = &generatorRun{
		id:       s.lastRun,
		params:   params,
		sections: make(map[int]string),
		next:     1,
	}
	return nil
}

// Step generates the next pending section. Callers drive the loop one call
// at a time so a pause lands between sections, never mid-request.
func (s *GeneratorService) Step(ctx context.Context, docID string) (*SectionResult, error) {
	s.mu.Lock()
	run, ok := s.runs[docID]
	if !ok {
		s.mu.Unlock()
		return nil, appErr.ErrNotFound
	}
	if run.paused {
		s.mu.Unlock()
		return nil, appErr.ErrConflict
	}
	if run.next > len(paperSections) {
		s.mu.Unlock()
		return nil, appErr.ErrConflict
	}
	section := paperSections[run.next-1]
	prompt := buildSectionPrompt(section, run)
	runID := run.id
	s.mu.Unlock()

	if s.provider == nil {
		return nil, appErr.ErrUnavailable
	}
	text, err := s.provider.Generate(ctx, s.model, prompt)
	if err != nil {
		logutil.GetLogger(ctx).With(
			zap.String("doc_id", docID),
			zap.Int("section", section.ID),
			zap.Error(err),
		).Error("section generation failed")
		return nil, fmt.Errorf("%w: %v", appErr.ErrUnavailable, err)
	}
	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok = s.runs[docID]
	if !ok || run.id != runID {
		// run was reset while the vendor call was in flight; the run id
		// changes on every Start, so a restart with identical params still
		// drops the stale result
		return nil, appErr.ErrConflict
	}
	run.sections[section.ID] = text
	run.next = section.ID + 1
	return &SectionResult{
		ID:       section.ID,
		Name:     section.Name,
		Text:     text,
		Progress: float64(section.ID) / float64(len(paperSections)),
		Done:     run.next > len(paperSections),
	}, nil
}

func (s *GeneratorService) Pause(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[docID]
	if !ok {
		return appErr.ErrNotFound
	}
	run.paused = true
	return nil
}

func (s *GeneratorService) Resume(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[docID]
	if !ok {
		return appErr.ErrNotFound
	}
	run.paused = false
	return nil
}

func (s *GeneratorService) Reset(docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, docID)
}

func (s *GeneratorService) Status(docID string) (*GeneratorStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[docID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	sections := make(map[int]string, len(run.sections))
	for id, text := range run.sections {
		sections[id] = text
	}
	names := make(map[int]string, len(paperSections))
	for _, section := range paperSections {
		names[section.ID] = section.Name
	}
	return &GeneratorStatus{
		Topic:      run.params.Topic,
		Next:       run.next,
		Paused:     run.paused,
		Progress:   float64(len(run.sections)) / float64(len(paperSections)),
		Done:       run.next > len(paperSections),
		Sections:   sections,
		SectionIDs: names,
	}, nil
}

// ExportMarkdown assembles the generated sections into one paper.
func (s *GeneratorService) ExportMarkdown(docID string) (fileName, content string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[docID]
	if !ok {
		return "", "", appErr.ErrNotFound
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", run.params.Topic)
	for _, section := range paperSections {
		text, ok := run.sections[section.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "## %d. %s\n\n%s\n\n", section.ID, section.Slovenian, text)
	}
	name := strings.ReplaceAll(run.params.Topic, " ", "_") + "_raziskovalni_clanek.md"
	return name, sb.String(), nil
}

// SectionBlocks converts one generated section into editor blocks: a level-1
// heading followed by one paragraph per blank-line separated chunk.
func SectionBlocks(name, text string) []document.Block {
	blocks := make([]document.Block, 0)
	heading := document.NewBlock(document.TypeHeading1)
	heading.Content = name
	blocks = append(blocks, heading)
	for _, chunk := range strings.Split(text, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		para := document.NewBlock(document.TypeParagraph)
		para.Content = chunk
		blocks = append(blocks, para)
	}
	return blocks
}

func buildSectionPrompt(section paperSection, run *generatorRun) string {
	user := section.User
	if section.ID > 1 {
		if outline, ok := run.sections[1]; ok {
			user = fmt.Sprintf("Based on this outline:\n\n%s\n\n%s", outline, user)
		}
	}
	if section.ID >= 4 {
		var prior strings.Builder
		for i := 2; i < section.ID; i++ {
			if text, ok := run.sections[i]; ok {
				fmt.Fprintf(&prior, "\n\nPrevious Section %d:\n%s", i, text)
			}
		}
		if prior.Len() > 0 {
			user = fmt.Sprintf("%s\n\nFor context, here are the previous sections:%s", user, prior.String())
		}
	}
	prompt := section.System + "\n\n" + user
	prompt = strings.ReplaceAll(prompt, "<TOPIC>", run.params.Topic)
	prompt = strings.ReplaceAll(prompt, "<LANG>", run.params.Language)
	prompt = strings.ReplaceAll(prompt, "<CITATION_STYLE>", run.params.CitationStyle)
	return prompt
}
