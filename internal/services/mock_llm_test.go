package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestMockLLMService(t *testing.T) {
	mockService := NewMockLLMAPI()

	err := mockService.InitModel(context.Background(), "test-model")
	if err != nil {
		t.Errorf("InitModel failed: %v", err)
	}

	if len(mockService.InitModelCalls) != 1 {
		t.Errorf("Expected 1 InitModel call, got %d", len(mockService.InitModelCalls))
	}

	if mockService.InitModelCalls[0] != "test-model" {
		t.Errorf("Expected model name 'test-model', got '%s'", mockService.InitModelCalls[0])
	}

	reply, err := mockService.Generate(context.Background(), "Hello")
	if err != nil {
		t.Errorf("Generate failed: %v", err)
	}

	if !strings.Contains(reply, "[RESPONSE]") {
		t.Errorf("Expected wrapped narration in default reply, got '%s'", reply)
	}

	_, generateCalls, _ := mockService.GetCalls()
	if len(generateCalls) != 1 {
		t.Errorf("Expected 1 Generate call, got %d", len(generateCalls))
	}
	if generateCalls[0] != "Hello" {
		t.Errorf("Expected recorded prompt 'Hello', got '%s'", generateCalls[0])
	}
}

func TestMockLLMService_ErrorHandling(t *testing.T) {
	mockService := NewMockLLMAPI()

	expectedErr := fmt.Errorf("generation failed")
	mockService.SetGenerateError(expectedErr)

	_, err := mockService.Generate(context.Background(), "Hello")
	if err == nil {
		t.Fatalf("Expected error, got nil")
	}
	if err.Error() != expectedErr.Error() {
		t.Errorf("Expected error '%v', got '%v'", expectedErr, err)
	}
}

func TestMockLLMService_FixedResponse(t *testing.T) {
	mockService := NewMockLLMAPI()
	mockService.SetGenerateResponse("[RESPONSE]scripted[/RESPONSE]")

	reply, err := mockService.Generate(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != "[RESPONSE]scripted[/RESPONSE]" {
		t.Errorf("Expected scripted reply, got '%s'", reply)
	}
}

func TestMockLLMService_ModelNotReady(t *testing.T) {
	mockService := NewMockLLMAPI()
	mockService.SetModelNotReady()

	ready, err := mockService.IsModelReady(context.Background(), "test-model")
	if err != nil {
		t.Fatalf("IsModelReady failed: %v", err)
	}
	if ready {
		t.Error("Expected model not ready")
	}

	mockService.Reset()
	initCalls, generateCalls, readyCalls := mockService.GetCalls()
	if len(initCalls) != 0 || len(generateCalls) != 0 || len(readyCalls) != 0 {
		t.Error("Expected call tracking cleared after Reset")
	}
}
