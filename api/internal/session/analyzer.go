package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"vision-cli/api/internal/console"
	"vision-cli/api/internal/vision"
)

var ErrEmptyCredentials = errors.New("key or endpoint is empty")

const (
	keyPrompt      = ">> Please enter your (Key): "
	endpointPrompt = ">> Please enter your (Endpoint): "
	promptRule     = "------------------------"

	sourceTitle   = " Do you want to analyze an image from a URL or a Local File?"
	optionURL     = "URL"
	optionFile    = "Local File"
	urlPrompt     = ">> Please enter the URL of the image:"
	filePrompt    = ">> Please enter the full path to the image on your desktop:"
	statusMessage = " Analyzing image..."

	msgEmptyCredentials = " Key or Endpoint cannot be empty. Please provide valid values."
	msgFileNotFound     = "Error: The specified file does not exist. Please check the path and try again."
)

// Analyzer runs one image analysis per call to Run: credentials, source,
// remote call under a spinner, then the result.
type Analyzer struct {
	auth     vision.Authenticator
	ui       UI
	log      log.Interface
	features vision.Features
	now      func() time.Time
}

func NewAnalyzer(auth vision.Authenticator, ui UI, logger log.Interface) *Analyzer {
	if logger == nil {
		logger = log.Log
	}
	return &Analyzer{
		auth:     auth,
		ui:       ui,
		log:      logger,
		features: vision.DefaultFeatures,
		now:      time.Now,
	}
}

// Run reports every validation and service failure on the UI and returns
// nil. Only a failure of the terminal itself (interrupt, closed input) is
// returned.
func (a *Analyzer) Run(ctx context.Context) error {
	entry := a.log.WithFields(log.Fields{
		"session": uuid.NewString(),
		"backend": a.auth.Name(),
	})

	creds, err := a.readCredentials()
	if err != nil {
		return err
	}
	if creds.Empty() {
		entry.WithError(ErrEmptyCredentials).Warn("analysis rejected")
		a.ui.Println(console.ToneError, msgEmptyCredentials)
		return nil
	}

	client, err := a.auth.Authenticate(ctx, creds)
	if err != nil {
		msg := scrub(err, creds)
		entry.WithField("error", msg).Error("authenticate")
		a.ui.Println(console.ToneError, "Error: "+msg)
		return nil
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			entry.WithField("error", scrub(cerr, creds)).Warn("close client")
		}
	}()

	req, err := a.readRequest()
	if err != nil {
		return err
	}
	entry = entry.WithField("source", req.Source.String())

	if err := req.Validate(); err != nil {
		entry.WithError(err).Warn("analysis rejected")
		if errors.Is(err, vision.ErrFileNotFound) {
			a.ui.Println(console.ToneError, msgFileNotFound)
		} else {
			a.ui.Println(console.ToneError, "Error: "+err.Error())
		}
		return nil
	}

	start := a.now()
	var res vision.Result
	err = a.ui.ShowStatus(ctx, statusMessage, func(ctx context.Context) error {
		var aerr error
		res, aerr = vision.Analyze(ctx, client, req, a.features)
		return aerr
	})
	entry = entry.WithField("duration", a.now().Sub(start).String())
	if err != nil {
		msg := scrub(err, creds)
		entry.WithField("error", msg).Error("analysis failed")
		a.ui.Println(console.ToneError, "Error: "+msg)
		return nil
	}

	entry.WithFields(log.Fields{
		"tags":    len(res.Tags),
		"objects": res.ObjectCount(),
	}).Info("analysis finished")
	display(a.ui, res)
	return nil
}

func (a *Analyzer) readCredentials() (vision.Credentials, error) {
	var c vision.Credentials
	err := a.ui.Styled(console.ToneSuccess, func() error {
		a.ui.Println(console.TonePlain, promptRule)
		key, err := a.ui.PromptMasked(keyPrompt)
		if err != nil {
			return err
		}
		a.ui.Println(console.TonePlain, promptRule+"----")
		endpoint, err := a.ui.PromptMasked(endpointPrompt)
		if err != nil {
			return err
		}
		c = vision.Credentials{Key: key, Endpoint: endpoint}
		return nil
	})
	if err != nil {
		return vision.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	return c, nil
}

func (a *Analyzer) readRequest() (vision.Request, error) {
	choice, err := a.ui.SelectOne(sourceTitle, []string{optionURL, optionFile})
	if err != nil {
		return vision.Request{}, fmt.Errorf("select source: %w", err)
	}
	kind, err := vision.ParseSourceKind(choice)
	if err != nil {
		return vision.Request{}, err
	}
	title := urlPrompt
	if kind == vision.SourceLocalFile {
		title = filePrompt
	}
	location, err := a.ui.PromptLine(title)
	if err != nil {
		return vision.Request{}, fmt.Errorf("read location: %w", err)
	}
	return vision.Request{Source: kind, Location: location}, nil
}
