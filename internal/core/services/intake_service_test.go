package services_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/aiprovider"
	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/core/services"
	"github.com/stretchr/testify/suite"
)

// jpegUpload is a minimal JPEG header padded so DetectContentType reports
// image/jpeg.
var jpegUpload = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 64)...)

// fakeAIClient returns a canned reply or error without touching the network.
type fakeAIClient struct {
	reply string
	err   error

	lastDoc    domain.RenderedDocument
	lastPrompt string
}

func (f *fakeAIClient) SubmitForExtraction(ctx context.Context, doc domain.RenderedDocument, prompt string) (string, error) {
	f.lastDoc = doc
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type IntakeServiceTestSuite struct {
	suite.Suite
	mockSettings *MockSettingsService
	fakeClient   *fakeAIClient
	now          time.Time
	userID       string
}

func (suite *IntakeServiceTestSuite) SetupTest() {
	suite.mockSettings = new(MockSettingsService)
	suite.fakeClient = &fakeAIClient{}
	suite.now = time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	suite.userID = "user-1"
}

func (suite *IntakeServiceTestSuite) newService(maxUploadSize int64) portssvc.IntakeSvcFacade {
	factory := func(provider domain.AIProvider, credential string, httpClient *http.Client) (aiprovider.Client, error) {
		return suite.fakeClient, nil
	}
	return services.NewIntakeService(suite.mockSettings, maxUploadSize, time.Second,
		services.WithClientFactory(factory),
		services.WithIntakeClock(func() time.Time { return suite.now }))
}

func (suite *IntakeServiceTestSuite) settingsWithCredential(credential string) *domain.Settings {
	s := domain.DefaultSettings(suite.userID)
	s.AIProvider = domain.AIProviderOpenAI
	s.AICredential = credential
	return &s
}

func (suite *IntakeServiceTestSuite) TestAnalyzeDocument_RejectsOversizedUpload() {
	svc := suite.newService(16)
	upload := portssvc.DocumentUpload{Filename: "conta.jpg", Data: jpegUpload}

	_, err := svc.AnalyzeDocument(context.Background(), suite.userID, upload)

	suite.ErrorIs(err, apperrors.ErrUnsupportedFormat)
	suite.mockSettings.AssertNotCalled(suite.T(), "GetSettings")
}

func (suite *IntakeServiceTestSuite) TestAnalyzeDocument_RejectsUnknownMediaType() {
	svc := suite.newService(1 << 20)
	upload := portssvc.DocumentUpload{Filename: "conta.txt", Data: []byte("plain text, not a bill")}

	_, err := svc.AnalyzeDocument(context.Background(), suite.userID, upload)

	suite.ErrorIs(err, apperrors.ErrUnsupportedFormat)
	suite.mockSettings.AssertNotCalled(suite.T(), "GetSettings")
}

func (suite *IntakeServiceTestSuite) TestAnalyzeDocument_RequiresCredential() {
	suite.mockSettings.On("GetSettings", context.Background(), suite.userID).
		Return(suite.settingsWithCredential(""), nil).Once()

	svc := suite.newService(1 << 20)
	upload := portssvc.DocumentUpload{Filename: "conta.jpg", Data: jpegUpload}

	_, err := svc.AnalyzeDocument(context.Background(), suite.userID, upload)

	suite.ErrorIs(err, apperrors.ErrNoCredential)
	suite.mockSettings.AssertExpectations(suite.T())
}

func (suite *IntakeServiceTestSuite) TestAnalyzeDocument_Success() {
	suite.mockSettings.On("GetSettings", context.Background(), suite.userID).
		Return(suite.settingsWithCredential("sk-test"), nil).Once()
	suite.fakeClient.reply = `{"beneficiary": "Enel Distribuicao", "amount": 245.67, "dueDate": "2024-07-20", "category": "Energia", "confidence": 0.93, "summary": "Conta de luz de julho."}`

	svc := suite.newService(1 << 20)
	upload := portssvc.DocumentUpload{Filename: "conta-enel.jpg", Data: jpegUpload}

	result, err := svc.AnalyzeDocument(context.Background(), suite.userID, upload)

	suite.Require().NoError(err)
	suite.Equal("Enel Distribuicao", result.Candidate.Beneficiary)
	suite.Equal("245.67", result.Candidate.Amount.String())
	suite.Equal(time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC), result.Candidate.DueDate)
	suite.Equal("Energia", result.Candidate.Category)
	suite.InDelta(0.93, result.Candidate.Confidence, 0.001)
	suite.Equal(domain.RenderOriginal, result.RenderKind)

	// The uploaded image and fixed prompt must reach the client unchanged.
	suite.Equal(jpegUpload, suite.fakeClient.lastDoc.Data)
	suite.Equal("image/jpeg", suite.fakeClient.lastDoc.Media)
	suite.Equal(aiprovider.ExtractionPrompt, suite.fakeClient.lastPrompt)
	suite.mockSettings.AssertExpectations(suite.T())
}

func (suite *IntakeServiceTestSuite) TestAnalyzeDocument_RemoteFailurePropagates() {
	suite.mockSettings.On("GetSettings", context.Background(), suite.userID).
		Return(suite.settingsWithCredential("sk-test"), nil).Once()
	suite.fakeClient.err = apperrors.ErrRemoteRequest

	svc := suite.newService(1 << 20)
	upload := portssvc.DocumentUpload{Filename: "conta.jpg", Data: jpegUpload}

	_, err := svc.AnalyzeDocument(context.Background(), suite.userID, upload)

	suite.ErrorIs(err, apperrors.ErrRemoteRequest)
}

func (suite *IntakeServiceTestSuite) TestAnalyzeDocument_UnparseableReply() {
	suite.mockSettings.On("GetSettings", context.Background(), suite.userID).
		Return(suite.settingsWithCredential("sk-test"), nil).Once()
	suite.fakeClient.reply = "I could not read this document, sorry."

	svc := suite.newService(1 << 20)
	upload := portssvc.DocumentUpload{Filename: "conta.jpg", Data: jpegUpload}

	_, err := svc.AnalyzeDocument(context.Background(), suite.userID, upload)

	suite.ErrorIs(err, apperrors.ErrAIParse)
}

func TestIntakeService(t *testing.T) {
	suite.Run(t, new(IntakeServiceTestSuite))
}
