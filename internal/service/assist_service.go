package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/outlinedev/outline/internal/ai"
	"github.com/outlinedev/outline/internal/document"
	"github.com/outlinedev/outline/internal/filestore"
	"github.com/outlinedev/outline/internal/model"
	appErr "github.com/outlinedev/outline/internal/pkg/errors"
	"github.com/outlinedev/outline/internal/pkg/timeutil"
	"github.com/outlinedev/outline/internal/repo"
)

const (
	assistCacheSize = 256
	assistCacheTTL  = time.Hour
)

const suggestPrompt = `You are an expert academic writing consultant specializing in thesis and dissertation writing.

Chapter from the thesis:
"%s"

Rewrite this chapter with improved clarity, coherence, and academic tone. Preserve the author's argument, structure, and citations. Return only the improved chapter text with no commentary.`

const consultPrompt = `You are an expert academic writing consultant specializing in thesis and dissertation writing. You have extensive experience in academic writing, research methodology, and helping students improve their scholarly work.

Selected text from the thesis:
"%s"

Student's question:
%s

Please provide expert advice as a thesis writing consultant. Consider:
- Academic writing standards and best practices
- Clarity, coherence, and flow of ideas
- Research methodology appropriateness
- Citation and referencing guidelines
- Structure and organization
- Argumentation and evidence presentation
- Language precision and academic tone

Respond in %s. Be specific, actionable, and supportive. Provide concrete suggestions for improvement where applicable.
do not write anything else
Only format the text using break lines - add one after each suggestion, no other formatting. Do not try to make any text bold or italic.`

// AssistService runs per-chapter vendor calls (LLM suggestions, AI-content
// detection, plagiarism, speech) and records their results both in the live
// session and in the assist_results table.
type AssistService struct {
	documents    *DocumentService
	users        *repo.UserRepo
	assists      *repo.AssistResultRepo
	provider     ai.IProvider
	model        string
	maxInput     int
	detector     *ai.Detector
	speech       *ai.Speech
	store        filestore.Store
	defaultVoice string
	cache        *expirable.LRU[string, []byte]
}

func NewAssistService(documents *DocumentService, users *repo.UserRepo, assists *repo.AssistResultRepo,
	provider ai.IProvider, model string, maxInput int,
	detector *ai.Detector, speech *ai.Speech, store filestore.Store, defaultVoice string) *AssistService {
	if defaultVoice == "" {
		defaultVoice = ai.DefaultVoiceID
	}
	return &AssistService{
		documents:    documents,
		users:        users,
		assists:      assists,
		provider:     provider,
		model:        model,
		maxInput:     maxInput,
		detector:     detector,
		speech:       speech,
		store:        store,
		defaultVoice: defaultVoice,
		cache:        expirable.NewLRU[string, []byte](assistCacheSize, nil, assistCacheTTL),
	}
}

func (s *AssistService) Suggest(ctx context.Context, userID, docID, headingID string) (*model.SuggestionResult, error) {
	session, text, err := s.chapterText(ctx, userID, docID, headingID)
	if err != nil {
		return nil, err
	}
	var result model.SuggestionResult
	err = s.run(ctx, session, userID, docID, headingID, document.KindSuggestion, cacheKeyFor(document.KindSuggestion, text), &result, func(ctx context.Context) (interface{}, error) {
		if s.provider == nil {
			return nil, appErr.ErrUnavailable
		}
		out, err := s.provider.Generate(ctx, s.model, fmt.Sprintf(suggestPrompt, text))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", appErr.ErrUnavailable, err)
		}
		return &model.SuggestionResult{Text: strings.TrimSpace(out)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *AssistService) Detect(ctx context.Context, userID, docID, headingID string) (*model.DetectionResult, error) {
	session, text, err := s.chapterText(ctx, userID, docID, headingID)
	if err != nil {
		return nil, err
	}
	var result model.DetectionResult
	err = s.run(ctx, session, userID, docID, headingID, document.KindDetection, cacheKeyFor(document.KindDetection, text), &result, func(ctx context.Context) (interface{}, error) {
		if s.detector == nil {
			return nil, appErr.ErrUnavailable
		}
		return s.detector.DetectAI(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *AssistService) Plagiarism(ctx context.Context, userID, docID, headingID string, excluded []string) (*model.PlagiarismResult, error) {
	session, text, err := s.chapterText(ctx, userID, docID, headingID)
	if err != nil {
		return nil, err
	}
	var result model.PlagiarismResult
	err = s.run(ctx, session, userID, docID, headingID, document.KindPlagiarism, cacheKeyFor(document.KindPlagiarism, strings.Join(append([]string{text}, excluded...), "\x00")), &result, func(ctx context.Context) (interface{}, error) {
		if s.detector == nil {
			return nil, appErr.ErrUnavailable
		}
		return s.detector.CheckPlagiarism(ctx, text, excluded)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Speak synthesizes one block's content and parks the audio in the file
// store. The session's audio slot makes the new block the single playing one.
func (s *AssistService) Speak(ctx context.Context, userID, docID, blockID string) (*model.SpeechResult, error) {
	session, err := s.documents.Session(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	block, ok := session.Get(blockID)
	if !ok {
		return nil, appErr.ErrNotFound
	}
	text := strings.TrimSpace(block.Content)
	if text == "" {
		return nil, appErr.ErrInvalid
	}
	voiceID := s.voiceFor(ctx, userID)

	var result model.SpeechResult
	err = s.run(ctx, session, userID, docID, blockID, document.KindSpeech, "", &result, func(ctx context.Context) (interface{}, error) {
		if s.speech == nil {
			return nil, appErr.ErrUnavailable
		}
		audio, err := s.speech.Synthesize(ctx, text, voiceID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", appErr.ErrUnavailable, err)
		}
		key := speechKey(docID, blockID, text, voiceID)
		if err := s.store.Save(ctx, key, nopSeekCloser{bytes.NewReader(audio)}, int64(len(audio))); err != nil {
			return nil, err
		}
		return &model.SpeechResult{FileKey: key, VoiceID: voiceID}, nil
	})
	if err != nil {
		return nil, err
	}
	session.PlayAudio(blockID)
	return &result, nil
}

func (s *AssistService) StopSpeech(ctx context.Context, userID, docID, blockID string) error {
	session, err := s.documents.Session(ctx, userID, docID)
	if err != nil {
		return err
	}
	session.StopAudio(blockID)
	return nil
}

// Consult answers a free-form question about the current text selection.
// Consultations are conversational and never persisted.
func (s *AssistService) Consult(ctx context.Context, userID, docID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", appErr.ErrInvalid
	}
	session, err := s.documents.Session(ctx, userID, docID)
	if err != nil {
		return "", err
	}
	selected := session.SelectionText()
	if selected == "" {
		return "", appErr.ErrInvalid
	}
	if s.provider == nil {
		return "", appErr.ErrUnavailable
	}
	prompt := fmt.Sprintf(consultPrompt, clip(selected, s.maxInput), question, s.languageFor(ctx, userID))
	out, err := s.provider.Generate(ctx, s.model, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErr.ErrUnavailable, err)
	}
	return strings.TrimSpace(out), nil
}

func (s *AssistService) Dismiss(ctx context.Context, userID, docID, blockID string, kind document.Kind) error {
	if !document.ValidKind(kind) {
		return appErr.ErrInvalid
	}
	session, err := s.documents.Session(ctx, userID, docID)
	if err != nil {
		return err
	}
	session.DismissAssist(blockID, kind)
	// only this kind's row; the block's other results stay persisted
	return s.assists.DeleteByBlockKind(ctx, docID, blockID, string(kind))
}

func (s *AssistService) Results(ctx context.Context, userID, docID string) ([]document.Result, error) {
	session, err := s.documents.Session(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	return session.AssistResults(), nil
}

// run executes one vendor call under the session's in-flight guard. The
// token from Begin is handed back to Complete so a result that raced with a
// block purge is dropped instead of applied. Non-speech payloads are cached
// by content hash so re-checking unchanged text skips the vendor round trip.
func (s *AssistService) run(ctx context.Context, session *document.Session, userID, docID, blockID string,
	kind document.Kind, cacheKey string, out interface{}, fn func(ctx context.Context) (interface{}, error)) error {
	token, ok := session.BeginAssist(blockID, kind)
	if !ok {
		return appErr.ErrTooMany
	}
	res := document.Result{Kind: kind, BlockID: blockID}
	var encoded []byte
	var callErr error
	if cacheKey != "" {
		if hit, ok := s.cache.Get(cacheKey); ok {
			encoded = hit
		}
	}
	if encoded == nil {
		var payload interface{}
		payload, callErr = fn(ctx)
		if callErr == nil {
			data, err := json.Marshal(payload)
			if err != nil {
				session.CompleteAssist(blockID, kind, token, document.Result{Kind: kind, BlockID: blockID, Err: err.Error()})
				return err
			}
			encoded = data
			if cacheKey != "" {
				s.cache.Add(cacheKey, data)
			}
		}
	}
	if callErr != nil {
		res.Err = callErr.Error()
	} else {
		res.Payload = json.RawMessage(encoded)
	}
	applied := session.CompleteAssist(blockID, kind, token, res)
	if callErr != nil {
		return callErr
	}
	if !applied {
		logutil.GetLogger(ctx).With(
			zap.String("doc_id", docID),
			zap.String("block_id", blockID),
			zap.String("kind", string(kind)),
		).Info("assist result discarded, block changed while call was in flight")
		return appErr.ErrConflict
	}
	if err := s.assists.Upsert(ctx, &repo.AssistResultRow{
		ID:         newID(),
		UserID:     userID,
		DocumentID: docID,
		BlockID:    blockID,
		Kind:       string(kind),
		Payload:    string(encoded),
		Ctime:      timeutil.NowUnix(),
	}); err != nil {
		return err
	}
	return json.Unmarshal(encoded, out)
}

func cacheKeyFor(kind document.Kind, text string) string {
	sum := sha256.Sum256([]byte(string(kind) + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (s *AssistService) chapterText(ctx context.Context, userID, docID, headingID string) (*document.Session, string, error) {
	session, err := s.documents.Session(ctx, userID, docID)
	if err != nil {
		return nil, "", err
	}
	chapter := session.Chapter(headingID)
	if chapter == nil {
		return nil, "", appErr.ErrNotFound
	}
	if !session.ChapterHasContent(headingID) {
		return nil, "", appErr.ErrInvalid
	}
	text := renderChapter(chapter)
	if strings.TrimSpace(text) == "" {
		return nil, "", appErr.ErrInvalid
	}
	return session, clip(text, s.maxInput), nil
}

// renderChapter flattens a chapter into plain markdown-ish text for prompts
// and detection payloads. Headings keep their level (## for heading-2 and so
// on), so nested sub-chapters stay distinguishable in the prompt.
func renderChapter(chapter *document.Chapter) string {
	lines := make([]string, 0, len(chapter.Blocks))
	for _, block := range chapter.Blocks {
		content := strings.TrimSpace(block.Content)
		if content == "" {
			continue
		}
		switch {
		case document.IsHeading(block.Type):
			lines = append(lines, strings.Repeat("#", document.HeadingLevel(block.Type))+" "+content)
		case block.Type == document.TypeCaption:
			lines = append(lines, "*"+content+"*")
		case block.Type == document.TypeBulletedList:
			lines = append(lines, "- "+content)
		case block.Type == document.TypeTodo:
			mark := " "
			if block.Checked {
				mark = "x"
			}
			lines = append(lines, "- ["+mark+"] "+content)
		case block.Type == document.TypeCode:
			lines = append(lines, "```\n"+content+"\n```")
		default:
			lines = append(lines, content)
		}
	}
	return strings.Join(lines, "\n\n")
}

func (s *AssistService) voiceFor(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err == nil && user.VoiceID != "" {
		return user.VoiceID
	}
	return s.defaultVoice
}

func (s *AssistService) languageFor(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user.Language == "" {
		return "Slovenian language"
	}
	switch strings.ToLower(user.Language) {
	case "sl", "slovenian":
		return "Slovenian language"
	case "en", "english":
		return "English language"
	default:
		return user.Language
	}
}

func speechKey(docID, blockID, text, voiceID string) string {
	sum := sha256.Sum256([]byte(voiceID + "\x00" + text))
	return docID + "-" + blockID + "-" + hex.EncodeToString(sum[:8]) + ".mp3"
}

func clip(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	return text[:max]
}
