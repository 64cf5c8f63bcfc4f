package explorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/chromaview/internal/bridge"
)

// CreateStatus is the lifecycle of the create-collection request.
type CreateStatus int

const (
	CreateIdle CreateStatus = iota
	CreateLoading
	CreateFinished
	CreateError
)

func (s CreateStatus) String() string {
	switch s {
	case CreateIdle:
		return "idle"
	case CreateLoading:
		return "loading"
	case CreateFinished:
		return "finished"
	case CreateError:
		return "error"
	default:
		return fmt.Sprintf("CreateStatus(%d)", int(s))
	}
}

// ErrInvalidName is returned by Submit when the name fails validation.
var ErrInvalidName = errors.New("collection name is invalid")

// CreateRequest is what Submit asks the caller to send to create_collection.
type CreateRequest struct {
	Name     string
	Metadata map[string]any
}

// Args renders the request as bridge arguments. Metadata is omitted when
// empty.
func (r CreateRequest) Args() bridge.Args {
	args := bridge.Args{"collectionName": r.Name}
	if r.Metadata != nil {
		args["metadata"] = r.Metadata
	}
	return args
}

// CreateFlow is the create-collection dialog state.
type CreateFlow struct {
	name       string
	validation *NameValidation
	status     CreateStatus
	message    string
	metaErr    string
}

// Status returns the lifecycle state.
func (f *CreateFlow) Status() CreateStatus { return f.status }

// Message is the backend error shown in the error state.
func (f *CreateFlow) Message() string { return f.message }

// MetadataError is the inline metadata parse error, if any.
func (f *CreateFlow) MetadataError() string { return f.metaErr }

// Validation returns the rule outcomes for the current name. ok is false
// until the name has been edited at least once.
func (f *CreateFlow) Validation() (NameValidation, bool) {
	if f.validation == nil {
		return NameValidation{}, false
	}
	return *f.validation, true
}

// SetName records the current name input and re-validates it.
func (f *CreateFlow) SetName(name string) {
	f.name = name
	v := ValidateName(name)
	f.validation = &v
}

// CanSubmit reports whether the submit action is enabled.
func (f *CreateFlow) CanSubmit() bool {
	return f.status == CreateIdle && f.validation != nil && f.validation.Valid()
}

// Submit validates the inputs and moves to Loading. An empty metadata text
// means no metadata. Metadata must otherwise be a JSON object; a parse
// failure keeps the flow idle and is reported inline.
func (f *CreateFlow) Submit(metadataText string) (CreateRequest, error) {
	if f.status != CreateIdle {
		return CreateRequest{}, fmt.Errorf("cannot submit while %s", f.status)
	}
	if !f.CanSubmit() {
		return CreateRequest{}, ErrInvalidName
	}
	f.metaErr = ""

	var metadata map[string]any
	if text := strings.TrimSpace(metadataText); text != "" {
		if err := json.Unmarshal([]byte(text), &metadata); err != nil {
			f.metaErr = "metadata must be a JSON object: " + err.Error()
			return CreateRequest{}, errors.New(f.metaErr)
		}
		if metadata == nil {
			f.metaErr = "metadata must be a JSON object"
			return CreateRequest{}, errors.New(f.metaErr)
		}
	}

	f.status = CreateLoading
	return CreateRequest{Name: f.name, Metadata: metadata}, nil
}

// Complete applies the create_collection outcome. It is ignored unless the
// flow is Loading.
func (f *CreateFlow) Complete(res bridge.Result[bool]) {
	if f.status != CreateLoading {
		return
	}
	if !res.OK() {
		f.status = CreateError
		f.message = res.Err
		return
	}
	f.status = CreateFinished
}

// Retry returns from Error to Idle without resubmitting.
func (f *CreateFlow) Retry() {
	if f.status == CreateError {
		f.status = CreateIdle
		f.message = ""
	}
}

// Reset clears everything, as when the dialog closes.
func (f *CreateFlow) Reset() {
	*f = CreateFlow{}
}
