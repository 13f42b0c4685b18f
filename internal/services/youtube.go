package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"
)

// TranscriptSegment is one caption fragment of a video.
type TranscriptSegment struct {
	Text string
}

type YouTubeService struct {
	httpClient    *http.Client
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
	timeout       time.Duration
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

func NewYouTubeService(timeout time.Duration) *YouTubeService {
	return &YouTubeService{
		httpClient:    &http.Client{Timeout: timeout},
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
		timeout:       timeout,
	}
}

var videoIDPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

const videoIDLength = 11

// ParseVideoID extracts the 11-character video id from a YouTube URL.
func ParseVideoID(rawURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if len(m) < 3 || len(m[2]) != videoIDLength {
		return "", ErrInvalidURL
	}
	return m[2], nil
}

// FetchTranscript returns the caption segments for a video. English tracks are
// preferred, then any language, then the watch page's timedtext track.
func (s *YouTubeService) FetchTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error) {
	return withTimeout(ctx, s.timeout, func(ctx context.Context) ([]TranscriptSegment, error) {
		transcript, err := s.transcriptAPI.GetTranscript(videoID, []string{"en", "en-US", "en-GB"})
		if err != nil {
			transcript, err = s.transcriptAPI.GetTranscript(videoID, nil)
		}
		if err == nil {
			segments := make([]TranscriptSegment, 0, len(transcript.Entries))
			for _, entry := range transcript.Entries {
				segments = append(segments, TranscriptSegment{Text: entry.Text})
			}
			return segments, nil
		}

		segments, legacyErr := s.fetchTimedText(ctx, videoID)
		if legacyErr == nil {
			return segments, nil
		}
		return nil, fmt.Errorf("transcript API: %v; timedtext fallback: %v", err, legacyErr)
	})
}

// VideoTitle looks up the video title. Callers treat failure as "no title".
func (s *YouTubeService) VideoTitle(ctx context.Context, videoID string) (string, error) {
	return withTimeout(ctx, s.timeout, func(ctx context.Context) (string, error) {
		video, err := s.ytClient.GetVideoContext(ctx, videoID)
		if err != nil {
			return "", fmt.Errorf("failed to fetch video metadata: %w", err)
		}
		return video.Title, nil
	})
}

func (s *YouTubeService) fetchTimedText(ctx context.Context, videoID string) ([]TranscriptSegment, error) {
	pageURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	body, err := s.get(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch YouTube page: %w", err)
	}

	captionURL, err := extractCaptionURL(string(body))
	if err != nil {
		return nil, err
	}

	captionReq, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, err
	}
	captionBody, err := s.get(captionReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}

	segments, err := parseCaptionsXML(captionBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse captions XML: %w", err)
	}
	return segments, nil
}

func (s *YouTubeService) get(req *http.Request) ([]byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

var (
	captionTracksPattern  = regexp.MustCompile(`"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	rendererTracksPattern = regexp.MustCompile(`"playerCaptionsTracklistRenderer"\s*:\s*\{(?:.*?,)?\s*"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	baseURLPattern        = regexp.MustCompile(`"baseUrl"\s*:\s*"(.*?)"`)
	playabilityPattern    = regexp.MustCompile(`"playabilityStatus"\s*:\s*\{\s*"status"\s*:\s*"(ERROR|LOGIN_REQUIRED|UNPLAYABLE)"`)
)

func extractCaptionURL(pageHTML string) (string, error) {
	if m := playabilityPattern.FindStringSubmatch(pageHTML); len(m) > 1 {
		if m[1] == "LOGIN_REQUIRED" {
			return "", fmt.Errorf("video is private")
		}
		return "", fmt.Errorf("video unavailable")
	}

	matches := captionTracksPattern.FindStringSubmatch(pageHTML)
	if len(matches) < 2 {
		matches = rendererTracksPattern.FindStringSubmatch(pageHTML)
		if len(matches) < 2 {
			return "", fmt.Errorf("no transcript found for this video")
		}
	}

	urlMatches := baseURLPattern.FindStringSubmatch(matches[1])
	if len(urlMatches) < 2 {
		return "", fmt.Errorf("caption track found but baseUrl missing")
	}

	u := urlMatches[1]
	u = strings.ReplaceAll(u, `\u0026`, "&")
	u = strings.ReplaceAll(u, `\/`, "/")
	return u, nil
}

func parseCaptionsXML(data []byte) ([]TranscriptSegment, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, err
	}

	segments := make([]TranscriptSegment, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		segments = append(segments, TranscriptSegment{Text: html.UnescapeString(t.Text)})
	}
	return segments, nil
}
