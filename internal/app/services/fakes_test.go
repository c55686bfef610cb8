package services

import (
	"context"
	"time"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/repositories"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. They implement just enough
// behavior for the service tests: lookups, a ledger with derived balances and
// scripted error queues where a test needs to force failures.

type fakeUserStore struct {
	users map[int64]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[int64]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*repositories.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*repositories.RefreshToken{}}
}

func (s *fakeTokenStore) Create(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	s.tokens[token] = &repositories.RefreshToken{
		ID:        int64(len(s.tokens) + 1),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *fakeTokenStore) GetByToken(_ context.Context, token string) (*repositories.RefreshToken, error) {
	if t, ok := s.tokens[token]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTokenNotFound
}

func (s *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func (s *fakeTokenStore) DeleteByUserID(_ context.Context, userID int64) error {
	for k, t := range s.tokens {
		if t.UserID == userID {
			delete(s.tokens, k)
		}
	}
	return nil
}

type fakeInstitutionStore struct {
	institutions map[int64]*models.Institution
}

func newFakeInstitutionStore(institutions ...*models.Institution) *fakeInstitutionStore {
	s := &fakeInstitutionStore{institutions: map[int64]*models.Institution{}}
	for _, inst := range institutions {
		s.institutions[inst.ID] = inst
	}
	return s
}

func (s *fakeInstitutionStore) GetAll(_ context.Context) ([]*models.Institution, error) {
	out := []*models.Institution{}
	for _, inst := range s.institutions {
		out = append(out, inst)
	}
	return out, nil
}

func (s *fakeInstitutionStore) GetByID(_ context.Context, id int64) (*models.Institution, error) {
	if inst, ok := s.institutions[id]; ok {
		return inst, nil
	}
	return nil, apperrors.ErrInstitutionNotFound
}

type fakeStudentStore struct {
	students  map[int64]*models.Student
	nextID    int64
	deleteErr error
}

func newFakeStudentStore(students ...*models.Student) *fakeStudentStore {
	s := &fakeStudentStore{students: map[int64]*models.Student{}, nextID: 1}
	for _, st := range students {
		s.students[st.ID] = st
		if st.ID >= s.nextID {
			s.nextID = st.ID + 1
		}
	}
	return s
}

func (s *fakeStudentStore) CreateWithUser(_ context.Context, user *models.User, student *models.Student) error {
	user.ID = s.nextID + 1000
	student.ID = s.nextID
	student.UserID = user.ID
	student.User = user
	s.nextID++
	s.students[student.ID] = student
	return nil
}

func (s *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if st, ok := s.students[id]; ok {
		return st, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *fakeStudentStore) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, st := range s.students {
		if st.UserID == userID {
			return st, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *fakeStudentStore) GetAll(_ context.Context) ([]*models.Student, error) {
	out := []*models.Student{}
	for _, st := range s.students {
		out = append(out, st)
	}
	return out, nil
}

func (s *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	s.students[student.ID] = student
	return nil
}

func (s *fakeStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.students, id)
	return nil
}

type fakeProfessorStore struct {
	professors map[int64]*models.Professor
}

func newFakeProfessorStore(professors ...*models.Professor) *fakeProfessorStore {
	s := &fakeProfessorStore{professors: map[int64]*models.Professor{}}
	for _, p := range professors {
		s.professors[p.ID] = p
	}
	return s
}

func (s *fakeProfessorStore) CreateWithUser(_ context.Context, user *models.User, professor *models.Professor) error {
	professor.ID = int64(len(s.professors) + 1)
	user.ID = professor.ID + 2000
	professor.UserID = user.ID
	s.professors[professor.ID] = professor
	return nil
}

func (s *fakeProfessorStore) GetByID(_ context.Context, id int64) (*models.Professor, error) {
	if p, ok := s.professors[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProfessorNotFound
}

func (s *fakeProfessorStore) GetByUserID(_ context.Context, userID int64) (*models.Professor, error) {
	for _, p := range s.professors {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, apperrors.ErrProfessorNotFound
}

func (s *fakeProfessorStore) GetAll(_ context.Context) ([]*models.Professor, error) {
	out := []*models.Professor{}
	for _, p := range s.professors {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeProfessorStore) ListActiveUserIDs(_ context.Context) ([]int64, error) {
	out := []int64{}
	for _, p := range s.professors {
		out = append(out, p.UserID)
	}
	return out, nil
}

type fakeCompanyStore struct {
	companies map[int64]*models.Company
}

func newFakeCompanyStore(companies ...*models.Company) *fakeCompanyStore {
	s := &fakeCompanyStore{companies: map[int64]*models.Company{}}
	for _, c := range companies {
		s.companies[c.ID] = c
	}
	return s
}

func (s *fakeCompanyStore) CreateWithUser(_ context.Context, user *models.User, company *models.Company) error {
	company.ID = int64(len(s.companies) + 1)
	user.ID = company.ID + 3000
	company.UserID = user.ID
	company.User = user
	company.IsActive = true
	s.companies[company.ID] = company
	return nil
}

func (s *fakeCompanyStore) GetByID(_ context.Context, id int64) (*models.Company, error) {
	if c, ok := s.companies[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (s *fakeCompanyStore) GetByUserID(_ context.Context, userID int64) (*models.Company, error) {
	for _, c := range s.companies {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (s *fakeCompanyStore) GetAll(_ context.Context) ([]*models.Company, error) {
	out := []*models.Company{}
	for _, c := range s.companies {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCompanyStore) Update(_ context.Context, company *models.Company) error {
	if _, ok := s.companies[company.ID]; !ok {
		return apperrors.ErrCompanyNotFound
	}
	s.companies[company.ID] = company
	return nil
}

func (s *fakeCompanyStore) SetActive(_ context.Context, id int64, active bool) error {
	c, ok := s.companies[id]
	if !ok {
		return apperrors.ErrCompanyNotFound
	}
	c.IsActive = active
	return nil
}

func (s *fakeCompanyStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.companies[id]; !ok {
		return apperrors.ErrCompanyNotFound
	}
	delete(s.companies, id)
	return nil
}

type fakeAdvantageStore struct {
	advantages map[int64]*models.Advantage
	nextID     int64
}

func newFakeAdvantageStore(advantages ...*models.Advantage) *fakeAdvantageStore {
	s := &fakeAdvantageStore{advantages: map[int64]*models.Advantage{}, nextID: 1}
	for _, a := range advantages {
		s.advantages[a.ID] = a
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

func (s *fakeAdvantageStore) Create(_ context.Context, adv *models.Advantage) error {
	adv.ID = s.nextID
	s.nextID++
	adv.IsActive = true
	adv.CreatedAt = time.Now()
	s.advantages[adv.ID] = adv
	return nil
}

func (s *fakeAdvantageStore) GetByID(_ context.Context, id int64) (*models.Advantage, error) {
	if a, ok := s.advantages[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAdvantageNotFound
}

func (s *fakeAdvantageStore) GetAllActive(_ context.Context) ([]*models.Advantage, error) {
	out := []*models.Advantage{}
	for _, a := range s.advantages {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAdvantageStore) GetByCompanyID(_ context.Context, companyID int64) ([]*models.Advantage, error) {
	out := []*models.Advantage{}
	for _, a := range s.advantages {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAdvantageStore) Update(_ context.Context, id int64, title, description, imageURL *string, costCoins *int64) error {
	a, ok := s.advantages[id]
	if !ok {
		return apperrors.ErrAdvantageNotFound
	}
	if title != nil {
		a.Title = *title
	}
	if description != nil {
		a.Description = *description
	}
	if imageURL != nil {
		a.ImageURL = imageURL
	}
	if costCoins != nil {
		a.CostCoins = *costCoins
	}
	return nil
}

func (s *fakeAdvantageStore) SetActive(_ context.Context, id int64, active bool) error {
	a, ok := s.advantages[id]
	if !ok {
		return apperrors.ErrAdvantageNotFound
	}
	a.IsActive = active
	return nil
}

func (s *fakeAdvantageStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.advantages[id]; !ok {
		return apperrors.ErrAdvantageNotFound
	}
	delete(s.advantages, id)
	return nil
}

// fakeLedger keeps balances per user and appends transactions like the real
// ledger does. Transfers fail with ErrInsufficientBalance exactly as the
// transactional repository would.
type fakeLedger struct {
	balances     map[int64]int64
	transactions []*models.Transaction
	nextID       int64
}

func newFakeLedger(balances map[int64]int64) *fakeLedger {
	if balances == nil {
		balances = map[int64]int64{}
	}
	return &fakeLedger{balances: balances, nextID: 1}
}

func (l *fakeLedger) GetBalance(_ context.Context, userID int64) (int64, error) {
	return l.balances[userID], nil
}

func (l *fakeLedger) append(txn *models.Transaction) *models.Transaction {
	txn.ID = l.nextID
	l.nextID++
	txn.CreatedAt = time.Now()
	l.transactions = append(l.transactions, txn)
	if txn.FromUserID != nil {
		l.balances[*txn.FromUserID] -= txn.Amount
	}
	l.balances[txn.ToUserID] += txn.Amount
	return txn
}

func (l *fakeLedger) Transfer(_ context.Context, fromUserID, toUserID, amount int64, reason string) (*models.Transaction, error) {
	if l.balances[fromUserID] < amount {
		return nil, apperrors.ErrInsufficientBalance
	}
	from := fromUserID
	return l.append(&models.Transaction{
		FromUserID: &from,
		ToUserID:   toUserID,
		Amount:     amount,
		Reason:     &reason,
		Kind:       models.TransactionTransfer,
	}), nil
}

func (l *fakeLedger) CreateSemesterCredits(_ context.Context, toUserIDs []int64, amount int64, reason string) ([]*models.Transaction, error) {
	out := []*models.Transaction{}
	for _, id := range toUserIDs {
		out = append(out, l.append(&models.Transaction{
			ToUserID: id,
			Amount:   amount,
			Reason:   &reason,
			Kind:     models.TransactionSemesterCredit,
		}))
	}
	return out, nil
}

func (l *fakeLedger) ListByUser(_ context.Context, userID int64) ([]*models.Transaction, error) {
	out := []*models.Transaction{}
	for _, txn := range l.transactions {
		if txn.ToUserID == userID || (txn.FromUserID != nil && *txn.FromUserID == userID) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListTransfersBySender(_ context.Context, fromUserID int64) ([]*models.Transaction, error) {
	out := []*models.Transaction{}
	for _, txn := range l.transactions {
		if txn.Kind == models.TransactionTransfer && txn.FromUserID != nil && *txn.FromUserID == fromUserID {
			out = append(out, txn)
		}
	}
	return out, nil
}

// fakeRedemptionStore mirrors the transactional redeem behavior including
// balance checks against a fakeLedger and a scripted error queue for
// collision tests.
type fakeRedemptionStore struct {
	ledger      *fakeLedger
	redemptions map[int64]*models.Redemption
	nextID      int64
	redeemErrs  []error
}

func newFakeRedemptionStore(ledger *fakeLedger, redemptions ...*models.Redemption) *fakeRedemptionStore {
	s := &fakeRedemptionStore{ledger: ledger, redemptions: map[int64]*models.Redemption{}, nextID: 1}
	for _, r := range redemptions {
		s.redemptions[r.ID] = r
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
	return s
}

func (s *fakeRedemptionStore) Redeem(_ context.Context, studentUserID, studentID, companyUserID int64, adv *models.Advantage, code string) (*models.Redemption, *models.Transaction, error) {
	if len(s.redeemErrs) > 0 {
		err := s.redeemErrs[0]
		s.redeemErrs = s.redeemErrs[1:]
		if err != nil {
			return nil, nil, err
		}
	}
	if s.ledger.balances[studentUserID] < adv.CostCoins {
		return nil, nil, apperrors.ErrInsufficientBalance
	}
	for _, r := range s.redemptions {
		if r.StudentID == studentID && r.AdvantageID == adv.ID && r.Status == models.RedemptionPending {
			return nil, nil, apperrors.ErrDuplicateRedemption
		}
	}

	reason := "Redemption: " + adv.Title
	from := studentUserID
	txn := s.ledger.append(&models.Transaction{
		FromUserID: &from,
		ToUserID:   companyUserID,
		Amount:     adv.CostCoins,
		Reason:     &reason,
		Kind:       models.TransactionRedemption,
	})

	red := &models.Redemption{
		ID:            s.nextID,
		StudentID:     studentID,
		AdvantageID:   adv.ID,
		TransactionID: txn.ID,
		Code:          code,
		Status:        models.RedemptionPending,
		CreatedAt:     time.Now(),
		Advantage:     adv,
	}
	s.nextID++
	s.redemptions[red.ID] = red
	return red, txn, nil
}

func (s *fakeRedemptionStore) HasPending(_ context.Context, studentID, advantageID int64) (bool, error) {
	for _, r := range s.redemptions {
		if r.StudentID == studentID && r.AdvantageID == advantageID && r.Status == models.RedemptionPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRedemptionStore) GetByID(_ context.Context, id int64) (*models.Redemption, error) {
	if r, ok := s.redemptions[id]; ok {
		return r, nil
	}
	return nil, apperrors.ErrRedemptionNotFound
}

func (s *fakeRedemptionStore) ListByStudentID(_ context.Context, studentID int64) ([]*models.Redemption, error) {
	out := []*models.Redemption{}
	for _, r := range s.redemptions {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRedemptionStore) UpdateStatus(_ context.Context, id int64, status models.RedemptionStatus) error {
	r, ok := s.redemptions[id]
	if !ok || r.Status != models.RedemptionPending {
		return apperrors.ErrRedemptionNotFound
	}
	r.Status = status
	return nil
}

type sentMail struct {
	To      string
	Subject string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject})
	return nil
}
