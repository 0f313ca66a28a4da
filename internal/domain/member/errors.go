package member

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 会员领域错误定义
var (
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "Member not found")

	ErrMembershipNotActive = apperrors.New(apperrors.ErrCodeMembershipInactive, "Member membership is not active")

	// ErrBorrowLimitReached 返回给客户端时会带上具体上限，见Member.CheckBorrow
	ErrBorrowLimitReached = apperrors.New(apperrors.ErrCodeBorrowLimitReached, "Member has reached maximum book limit")

	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "A member with this email already exists")

	ErrMemberNumberDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Member number already exists")

	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Please provide first name and last name")

	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "Please provide a valid email")

	ErrInvalidPhone = apperrors.New(apperrors.ErrCodeInvalidParams, "Phone number must be 10 digits")

	ErrAddressRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Please provide address and city")

	ErrInvalidMembershipType = apperrors.New(apperrors.ErrCodeInvalidParams, "Membership type must be Premium, Standard or Basic")

	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "Membership status must be Active, Suspended or Cancelled")

	ErrInvalidMembershipPeriod = apperrors.New(apperrors.ErrCodeInvalidParams, "Membership end date must be after start date")

	ErrInvalidMaxBooks = apperrors.New(apperrors.ErrCodeInvalidParams, "Max books allowed must be at least 1")
)
