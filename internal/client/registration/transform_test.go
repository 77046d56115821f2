package registration

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/common"
)

func fixedNow(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Unix(1700000000, 0) }
	t.Cleanup(func() { now = orig })
}

func validMemberFields() Fields {
	return Fields{
		FullName: "John Doe",
		Email:    "john@example.com",
		Password: "Secret12",
		Phone:    "+371 555-0101",
	}
}

func TestTransform_Member(t *testing.T) {
	fixedNow(t)

	p, err := Transform(models.UserTypeMember, validMemberFields())
	require.NoError(t, err)

	assert.Equal(t, "john@example.com", p.Email)
	assert.Equal(t, models.UserTypeMember, p.UserType)
	assert.Equal(t, "John", p.FirstName)
	assert.Equal(t, "Doe", p.LastName)
	assert.Equal(t, "john_john_1700000000", p.Username)
	assert.Empty(t, p.GymName)
	assert.Empty(t, p.BusinessName)
}

func TestTransform_GymOwnerRequiresGymName(t *testing.T) {
	f := validMemberFields()
	_, err := Transform(models.UserTypeGymOwner, f)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "gym name")

	f.GymName = "Iron Temple"
	p, err := Transform(models.UserTypeGymOwner, f)
	require.NoError(t, err)
	assert.Equal(t, "Iron Temple", p.GymName)
}

func TestTransform_EmployeeRequiresBusinessName(t *testing.T) {
	f := validMemberFields()
	_, err := Transform(models.UserTypeEmployee, f)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "business name")

	f.BusinessName = "  ProteinWorks  "
	p, err := Transform(models.UserTypeEmployee, f)
	require.NoError(t, err)
	assert.Equal(t, "ProteinWorks", p.BusinessName)
}

func TestTransform_UnknownRole(t *testing.T) {
	_, err := Transform(models.UserType("WIZARD"), validMemberFields())
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestTransform_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "plain", "a@b", "a b@c.d", "@c.d"} {
		f := validMemberFields()
		f.Email = email
		_, err := Transform(models.UserTypeMember, f)
		require.ErrorIs(t, err, common.ErrValidation, "email %q", email)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Secret12", true},
		{"Sh0rt", false},          // too short
		{"alllower1", false},      // no upper
		{"ALLUPPER1", false},      // no lower
		{"NoDigitsHere", false},   // no digit
		{"Good1Enough", true},
	}
	for _, tc := range tests {
		err := ValidatePassword(tc.password)
		if tc.ok {
			assert.NoError(t, err, tc.password)
		} else {
			assert.ErrorIs(t, err, common.ErrValidation, tc.password)
		}
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in          string
		first, last string
	}{
		{"John Doe", "John", "Doe"},
		{"Madonna", "Madonna", ""},
		{"Juan Carlos de la Cruz", "Juan", "Carlos de la Cruz"},
		{"   ", "", ""},
		{"", "", ""},
	}
	for _, tc := range tests {
		first, last := SplitName(tc.in)
		assert.Equal(t, tc.first, first, tc.in)
		assert.Equal(t, tc.last, last, tc.in)
	}
}

func TestDeriveUsername_Shape(t *testing.T) {
	fixedNow(t)
	shape := regexp.MustCompile(`^\w{3,50}$`)

	cases := []struct {
		first, email string
	}{
		{"John", "john@example.com"},
		{"Östen-Åke", "osten.ake+gym@mail.example.org"},
		{"", "x@y.z"},
		{"ALongFirstNameThatJustKeepsGoingAndGoing", "averylongmailboxname.with.dots@example.com"},
		{"O'Brien", "o'brien@pub.ie"},
	}
	for _, tc := range cases {
		u := DeriveUsername(tc.first, tc.email)
		assert.True(t, shape.MatchString(u), "username %q from (%q, %q)", u, tc.first, tc.email)
		assert.LessOrEqual(t, len(u), 50)
	}
}

func TestDeriveUsername_Truncation(t *testing.T) {
	fixedNow(t)
	u := DeriveUsername("Wolfeschlegelsteinhausenbergerdorff", "wolfeschlegelsteinhausen@example.de")
	assert.Len(t, u, 50)
}
