// Package mocks provides mock implementations of the vault use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

// MockVaultRepository is a mock implementation of VaultRepository.
type MockVaultRepository struct {
	mock.Mock
}

// Get mocks the Get method of VaultRepository.
func (m *MockVaultRepository) Get(ctx context.Context, name string) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

// Save mocks the Save method of VaultRepository.
func (m *MockVaultRepository) Save(ctx context.Context, vault *vaultDomain.Vault) error {
	return m.Called(ctx, vault).Error(0)
}

// Swap mocks the Swap method of VaultRepository.
func (m *MockVaultRepository) Swap(ctx context.Context, name, oldContent, newContent string) error {
	return m.Called(ctx, name, oldContent, newContent).Error(0)
}

// Delete mocks the Delete method of VaultRepository.
func (m *MockVaultRepository) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// List mocks the List method of VaultRepository.
func (m *MockVaultRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Vault), args.Error(1)
}

// MockContentUseCase is a mock implementation of ContentUseCase.
type MockContentUseCase struct {
	mock.Mock
}

// Decrypt mocks the Decrypt method of ContentUseCase.
func (m *MockContentUseCase) Decrypt(
	ctx context.Context,
	content, password string,
) (*vaultDomain.DecryptResult, error) {
	args := m.Called(ctx, content, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.DecryptResult), args.Error(1)
}

// Encrypt mocks the Encrypt method of ContentUseCase.
func (m *MockContentUseCase) Encrypt(
	ctx context.Context,
	password string,
	payload *vaultDomain.Payload,
) (string, error) {
	args := m.Called(ctx, password, payload)
	return args.String(0), args.Error(1)
}

// Rekey mocks the Rekey method of ContentUseCase.
func (m *MockContentUseCase) Rekey(ctx context.Context, content, oldPassword, newPassword string) (string, error) {
	args := m.Called(ctx, content, oldPassword, newPassword)
	return args.String(0), args.Error(1)
}

// Inspect mocks the Inspect method of ContentUseCase.
func (m *MockContentUseCase) Inspect(ctx context.Context, content string) (*vaultDomain.EnvelopeInfo, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.EnvelopeInfo), args.Error(1)
}

// MockVaultUseCase is a mock implementation of VaultUseCase.
type MockVaultUseCase struct {
	mock.Mock
}

// Save mocks the Save method of VaultUseCase.
func (m *MockVaultUseCase) Save(
	ctx context.Context,
	name, password string,
	payload *vaultDomain.Payload,
) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, name, password, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

// Open mocks the Open method of VaultUseCase.
func (m *MockVaultUseCase) Open(ctx context.Context, name, password string) (*vaultDomain.DecryptResult, error) {
	args := m.Called(ctx, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.DecryptResult), args.Error(1)
}

// ChangePassword mocks the ChangePassword method of VaultUseCase.
func (m *MockVaultUseCase) ChangePassword(
	ctx context.Context,
	name, oldPassword, newPassword string,
) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, name, oldPassword, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

// Delete mocks the Delete method of VaultUseCase.
func (m *MockVaultUseCase) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// List mocks the List method of VaultUseCase.
func (m *MockVaultUseCase) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Vault), args.Error(1)
}
