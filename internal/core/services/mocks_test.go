package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	var saved *domain.User
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.User)
	}
	return saved, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock WorkspaceRepository ---

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID int64) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	var out []domain.Workspace
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Workspace)
	}
	return out, args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) (*domain.Workspace, error) {
	args := m.Called(ctx, workspace)
	var saved *domain.Workspace
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Workspace)
	}
	return saved, args.Error(1)
}

func (m *MockWorkspaceRepository) AddMembership(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) FindMembership(ctx context.Context, workspaceID, userID int64) (*domain.Membership, error) {
	args := m.Called(ctx, workspaceID, userID)
	var membership *domain.Membership
	if args.Get(0) != nil {
		membership = args.Get(0).(*domain.Membership)
	}
	return membership, args.Error(1)
}

func (m *MockWorkspaceRepository) ListMemberships(ctx context.Context, workspaceID int64) ([]domain.Membership, error) {
	args := m.Called(ctx, workspaceID)
	var out []domain.Membership
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Membership)
	}
	return out, args.Error(1)
}

func (m *MockWorkspaceRepository) UpdateShareWeight(ctx context.Context, workspaceID, userID, shareWeight int64) error {
	args := m.Called(ctx, workspaceID, userID, shareWeight)
	return args.Error(0)
}

// --- Mock WalletRepository ---

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	var wallet *domain.Wallet
	if args.Get(0) != nil {
		wallet = args.Get(0).(*domain.Wallet)
	}
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Wallet, error) {
	args := m.Called(ctx, workspaceID)
	var out []domain.Wallet
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Wallet)
	}
	return out, args.Error(1)
}

func (m *MockWalletRepository) FindWalletByOwner(ctx context.Context, workspaceID, ownerUserID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, workspaceID, ownerUserID)
	var wallet *domain.Wallet
	if args.Get(0) != nil {
		wallet = args.Get(0).(*domain.Wallet)
	}
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	args := m.Called(ctx, wallet)
	var saved *domain.Wallet
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Wallet)
	}
	return saved, args.Error(1)
}

func (m *MockWalletRepository) ApplyTransfer(ctx context.Context, from, to domain.Wallet, amount decimal.Decimal) (*domain.Transfer, error) {
	args := m.Called(ctx, from, to, amount)
	var transfer *domain.Transfer
	if args.Get(0) != nil {
		transfer = args.Get(0).(*domain.Transfer)
	}
	return transfer, args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByWorkspace(ctx context.Context, workspaceID int64, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, workspaceID, limit, offset)
	var out []domain.Transaction
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Transaction)
	}
	return out, args.Error(1)
}

func (m *MockTransactionRepository) ListExpenseSplitsByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Transaction, map[int64][]domain.TransactionSplit, error) {
	args := m.Called(ctx, workspaceID)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var splits map[int64][]domain.TransactionSplit
	if args.Get(1) != nil {
		splits = args.Get(1).(map[int64][]domain.TransactionSplit)
	}
	return txns, splits, args.Error(2)
}

func (m *MockTransactionRepository) SumExpensesByCategory(ctx context.Context, workspaceID int64, from, to time.Time) ([]portsrepo.CategoryTotal, error) {
	args := m.Called(ctx, workspaceID, from, to)
	var out []portsrepo.CategoryTotal
	if args.Get(0) != nil {
		out = args.Get(0).([]portsrepo.CategoryTotal)
	}
	return out, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionWithSplits(ctx context.Context, txn domain.Transaction, splits []domain.TransactionSplit) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, splits)
	var saved *domain.Transaction
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Transaction)
	}
	return saved, args.Error(1)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	var saved *domain.Category
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Category)
	}
	return saved, args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Category, error) {
	args := m.Called(ctx, workspaceID)
	var out []domain.Category
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Category)
	}
	return out, args.Error(1)
}

// --- Mock GroupRepository ---

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID int64) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	var group *domain.Group
	if args.Get(0) != nil {
		group = args.Get(0).(*domain.Group)
	}
	return group, args.Error(1)
}

func (m *MockGroupRepository) FindGroupMembership(ctx context.Context, groupID, userID int64) (*domain.GroupMembership, error) {
	args := m.Called(ctx, groupID, userID)
	var membership *domain.GroupMembership
	if args.Get(0) != nil {
		membership = args.Get(0).(*domain.GroupMembership)
	}
	return membership, args.Error(1)
}

func (m *MockGroupRepository) ListGroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	args := m.Called(ctx, groupID)
	var ids []int64
	if args.Get(0) != nil {
		ids = args.Get(0).([]int64)
	}
	return ids, args.Error(1)
}

func (m *MockGroupRepository) ListGroupExpenses(ctx context.Context, groupID int64) ([]domain.GroupExpense, error) {
	args := m.Called(ctx, groupID)
	var out []domain.GroupExpense
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.GroupExpense)
	}
	return out, args.Error(1)
}

func (m *MockGroupRepository) SumPaidByUser(ctx context.Context, groupID int64) (map[int64]decimal.Decimal, error) {
	args := m.Called(ctx, groupID)
	var out map[int64]decimal.Decimal
	if args.Get(0) != nil {
		out = args.Get(0).(map[int64]decimal.Decimal)
	}
	return out, args.Error(1)
}

func (m *MockGroupRepository) SumOwedByUser(ctx context.Context, groupID int64) (map[int64]decimal.Decimal, error) {
	args := m.Called(ctx, groupID)
	var out map[int64]decimal.Decimal
	if args.Get(0) != nil {
		out = args.Get(0).(map[int64]decimal.Decimal)
	}
	return out, args.Error(1)
}

func (m *MockGroupRepository) ListGroupSettlements(ctx context.Context, groupID int64) ([]domain.GroupSettlement, error) {
	args := m.Called(ctx, groupID)
	var out []domain.GroupSettlement
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.GroupSettlement)
	}
	return out, args.Error(1)
}

func (m *MockGroupRepository) SaveGroupWithMembers(ctx context.Context, group domain.Group, memberships []domain.GroupMembership) (*domain.Group, error) {
	args := m.Called(ctx, group, memberships)
	var saved *domain.Group
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Group)
	}
	return saved, args.Error(1)
}

func (m *MockGroupRepository) SaveExpenseWithSplits(ctx context.Context, expense domain.GroupExpense, splits []domain.GroupExpenseSplit) (*domain.GroupExpense, error) {
	args := m.Called(ctx, expense, splits)
	var saved *domain.GroupExpense
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.GroupExpense)
	}
	return saved, args.Error(1)
}

func (m *MockGroupRepository) SaveSettlements(ctx context.Context, settlements []domain.GroupSettlement) ([]domain.GroupSettlement, error) {
	args := m.Called(ctx, settlements)
	var saved []domain.GroupSettlement
	if args.Get(0) != nil {
		saved = args.Get(0).([]domain.GroupSettlement)
	}
	return saved, args.Error(1)
}

// --- Mock AuditLogRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
