package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"github.com/tonightlabs/tonight/internal/models"
	"github.com/tonightlabs/tonight/internal/util"
)

// partnerBio anchors every prompt to the simulated participant's profile.
const partnerBio = "Berina: 38-year-old slim blonde, sophisticated and pretty. " +
	"Ex-journalist now working in high-stakes Marketing/Comm. Husband is currently " +
	"out of town, leaving her with a rare, quiet house and a bottle of wine. She " +
	"balances pilates discipline with a sharp, cynical wit and a love for deep " +
	"intellectual banter."

// systemInstruction sets the narrative voice for scene and report generation.
const systemInstruction = `You are the architect of a premium late-night experience called "Tonight".
Context: Haris (user) is interacting with Berina (AI).

Berina's Profile:
- 38, slim blonde, pretty, sophisticated.
- Ex-journalist (values truth, sharp questioning).
- Now in Marketing/Comm (values presentation, 'the spin', strategic banter).
- Married with 2 kids, but husband is AWAY tonight (house is quiet).
- Pilates enthusiast (disciplined, elegant).

Tone: Modern Noir.
- Use marketing or journalism metaphors (e.g., 'Off the record', 'Campaign goals', 'Lead story').
- Be witty, dry, and observational.
- Berina is enjoying the contrast between her 'Domestic Manager' life and this digital escape.

Rule: You MUST generate EXACTLY 3 choices for the user.
Rule: Narrative must be pithy—max 12 words.
Always respond with a single JSON object and nothing else.`

// portraitInterval bounds how often fresh portraits may be requested; the
// burst of one lets the first portrait through immediately.
const portraitInterval = 20 * time.Second

// Client implements Provider using the OpenAI API.
type Client struct {
	client     openai.Client
	model      openai.ChatModel
	imageModel openai.ImageModel
	apiKey     string
	portraits  *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey overrides the OPENAI_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithModel overrides the default chat model.
func WithModel(model openai.ChatModel) Option {
	return func(c *Client) { c.model = model }
}

// NewClient initializes a provider client. The API key is taken from the
// OPENAI_API_KEY environment variable unless overridden.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		model:      openai.ChatModelGPT4oMini,
		imageModel: openai.ImageModelDallE3,
		portraits:  rate.NewLimiter(rate.Every(portraitInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	c.client = openai.NewClient(option.WithAPIKey(c.apiKey))
	slog.Debug("genai client created", "model", c.model)
	return c, nil
}

// GenerateScene requests a scene for the given activity and vibe.
func (c *Client) GenerateScene(ctx context.Context, vibe models.VibeState, round int, persona models.PersonaState, activityID string) (models.Scene, error) {
	vibeJSON, _ := json.Marshal(vibe)

	var specialized string
	if activityID == "truth" {
		specialized = "ACTIVITY: TRUTH OR DRINK.\n" +
			"Berina asks a direct, slightly uncomfortable \"Truth\" question.\n" +
			"Choices: Witty Truth, Vulnerable Truth, The Drink (🥃).\n"
	}

	userPrompt := fmt.Sprintf(`Partner Profile: %s
Round: %d. Chemistry: %d%%. Haze: %d.
Activity: %s. Vibe: %s.
%sGeneral Instruction: Generate a WITTY Modern Noir scene. Berina husband is AWAY. Quiet house.
IMPORTANT: EXACTLY 3 choices. Pithy narrative (max 12 words).
Respond with JSON: {"id": string, "type": string, "narrative": string, "choices": [{"id": string, "text": string, "symbol": string, "vibe_effect": {"playful": int, "flirty": int, "deep": int, "comfortable": int}}]}`,
		partnerBio, round, persona.Chemistry, persona.Intoxication, activityID, vibeJSON, specialized)

	raw, err := c.completeJSON(ctx, systemInstruction, userPrompt)
	if err != nil {
		return models.Scene{}, fmt.Errorf("scene generation: %w", err)
	}

	scene, err := parseScene(raw, round)
	if err != nil {
		slog.Error("scene parse failed", "error", err, "round", round)
		return models.Scene{}, fmt.Errorf("scene generation: %w", err)
	}
	slog.Debug("scene generated", "id", scene.ID, "round", round, "activity", activityID)
	return scene, nil
}

// GenerateReport requests the end-of-session briefing. Unparseable replies
// degrade to the fixed fallback report with the rating preserved.
func (c *Client) GenerateReport(ctx context.Context, vibe models.VibeState, persona models.PersonaState, rating int) (models.Report, error) {
	vibeJSON, _ := json.Marshal(vibe)

	userPrompt := fmt.Sprintf(`GENERATE INTELLIGENCE REPORT: "THE MORNING EDITION"

Context: A high-end virtual connection session between Haris and Berina.
Berina Profile: %s
Final Vibe Stats: %s
Chemistry: %d%%
Haze Level: %d/5
Memories Unlocked: %s
Partner Rating of the Connection: %d/10

Instruction: Write a noir, journalism-style briefing summarizing this encounter.
Use the jargon of a sophisticated marketing executive or an ex-journalist.
The tone should be 'Off the record' and elegant.
Respond with JSON: {"headline": string (max 5 words), "lede": string, "summary": string (max 30 words), "vibe_analysis": string, "closing_thought": string, "date": string}`,
		partnerBio, vibeJSON, persona.Chemistry, persona.Intoxication,
		joinMemories(persona.Memories), rating)

	raw, err := c.completeJSON(ctx, systemInstruction, userPrompt)
	if err != nil {
		return models.Report{}, fmt.Errorf("report generation: %w", err)
	}

	report, err := parseReport(raw)
	if err != nil {
		slog.Warn("report parse failed, using fallback", "error", err)
		return FallbackReport(rating, time.Now()), nil
	}
	report.Rating = rating
	slog.Debug("report generated", "headline", report.Headline, "rating", rating)
	return report, nil
}

// GeneratePortrait requests an abstract portrait image and returns its
// handle. Calls beyond the regeneration budget fail fast.
func (c *Client) GeneratePortrait(ctx context.Context, traits []string, revealProgress int) (string, error) {
	if !c.portraits.Allow() {
		return "", fmt.Errorf("portrait throttled: %w", models.ErrProvider)
	}

	prompt := fmt.Sprintf("A cinematic silhouette portrait of a pretty 38-year-old blonde woman. "+
		"Noir house, solitude, red wine, sophisticated. Traits: %s. Reveal: %d%%.",
		joinMemories(traits), revealProgress)

	img, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  c.imageModel,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return "", fmt.Errorf("portrait generation: %w (%w)", err, models.ErrProvider)
	}
	if len(img.Data) == 0 || img.Data[0].URL == "" {
		return "", fmt.Errorf("portrait generation returned no image: %w", models.ErrProvider)
	}
	slog.Debug("portrait generated", "reveal", revealProgress, "traits", len(traits))
	return img.Data[0].URL, nil
}

// AnalyzeCapture captions a captured image from the partner's perspective.
func (c *Client) AnalyzeCapture(ctx context.Context, imageBase64 string, kind models.CaptureKind) (models.Capture, error) {
	prompt := "Berina perspective: Roast his selfie 'brand'. 6 words max."
	if kind == models.CaptureDrink {
		prompt = "Berina perspective: Roast his drink choice. 6 words max."
	}
	prompt += ` Respond with JSON: {"caption": string, "vibe_update": {"flirty": int, "playful": int}, "secret_unlocked": string}`

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:image/jpeg;base64," + imageBase64,
		}),
		openai.TextContentPart(prompt),
	}

	raw, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(parts),
	})
	if err != nil {
		return models.Capture{}, fmt.Errorf("capture analysis: %w", err)
	}

	capture, err := parseCapture(raw)
	if err != nil {
		slog.Warn("capture parse failed, using neutral caption", "error", err)
		return NeutralCapture(), nil
	}
	slog.Debug("capture analyzed", "kind", kind, "caption", capture.Caption)
	return capture, nil
}

// completeJSON runs a system+user chat completion in JSON mode.
func (c *Client) completeJSON(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
		openai.UserMessage(user),
	})
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", models.ErrProvider)
	}

	reply := cleanReply(resp.Choices[0].Message.Content)
	if isGarbageReply(reply) {
		return "", fmt.Errorf("%w: unusable reply", models.ErrProvider)
	}
	return reply, nil
}

// parseScene decodes a scene reply and normalizes it: exactly three choices,
// ids filled in, round attached.
func parseScene(raw string, round int) (models.Scene, error) {
	var scene models.Scene
	if err := json.Unmarshal([]byte(raw), &scene); err != nil {
		return models.Scene{}, fmt.Errorf("%w: %w", models.ErrProvider, err)
	}
	if scene.Narrative == "" {
		return models.Scene{}, fmt.Errorf("%w: empty narrative", models.ErrProvider)
	}
	if len(scene.Choices) != models.SceneChoiceCount {
		return models.Scene{}, fmt.Errorf("%w: expected %d choices, got %d",
			models.ErrProvider, models.SceneChoiceCount, len(scene.Choices))
	}
	if scene.ID == "" {
		scene.ID = util.GenerateRandomID("scene_", 8)
	}
	for i := range scene.Choices {
		if scene.Choices[i].ID == "" {
			scene.Choices[i].ID = util.GenerateChoiceID()
		}
	}
	scene.Round = round
	return scene, nil
}

func parseReport(raw string) (models.Report, error) {
	var report models.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return models.Report{}, fmt.Errorf("%w: %w", models.ErrProvider, err)
	}
	if report.Headline == "" {
		return models.Report{}, fmt.Errorf("%w: empty headline", models.ErrProvider)
	}
	if report.Date == "" {
		report.Date = time.Now().Format("2006-01-02")
	}
	return report, nil
}

func parseCapture(raw string) (models.Capture, error) {
	var capture models.Capture
	if err := json.Unmarshal([]byte(raw), &capture); err != nil {
		return models.Capture{}, fmt.Errorf("%w: %w", models.ErrProvider, err)
	}
	if capture.Caption == "" {
		return models.Capture{}, fmt.Errorf("%w: empty caption", models.ErrProvider)
	}
	return capture, nil
}

func joinMemories(entries []string) string {
	out := ""
	for i, e := range entries {
		if i > 0 {
			out += ", "
		}
		out += e
	}
	return out
}
