package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategory(t *testing.T) {
	require.True(t, CategoryProperty.Valid())
	require.False(t, CategoryNone.Valid())
	require.False(t, Category("BOATS").Valid())
	require.Equal(t, "Auto Dealership", CategoryAutoDealership.Label())
	require.Equal(t, "Uncategorized", CategoryNone.Label())
	for _, c := range Categories {
		require.NotEmpty(t, Subcategories(c), c)
	}
}

func TestDefaultHours(t *testing.T) {
	hours := DefaultHours()
	require.Len(t, hours, 7)
	require.Equal(t, "Monday", hours[0].Day)
	require.Equal(t, "Sunday", hours[6].Day)
	require.False(t, hours[0].IsClosed)
	require.True(t, hours[5].IsClosed)
	require.Empty(t, hours[6].OpenTime)
}

func TestPrimaryImage(t *testing.T) {
	l := &Listing{}
	_, ok := l.PrimaryImage()
	require.False(t, ok)

	l.Images = []Image{{ID: "a"}, {ID: "b", IsPrimary: true}}
	img, ok := l.PrimaryImage()
	require.True(t, ok)
	require.Equal(t, "b", img.ID)

	l.Images[1].IsPrimary = false
	img, _ = l.PrimaryImage()
	require.Equal(t, "a", img.ID)
}

func TestOwnedBy(t *testing.T) {
	l := &Listing{OwnerID: "u1"}
	require.True(t, l.OwnedBy("u1"))
	require.False(t, l.OwnedBy("u2"))
	require.False(t, l.OwnedBy(""))
	require.False(t, (&Listing{}).OwnedBy(""))
}

func TestInquiryParamsValidate(t *testing.T) {
	errs := InquiryParams{}.Validate()
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "message")

	errs = InquiryParams{Name: "A", Email: "a@b.co", Message: "hello there!"}.Validate()
	require.Empty(t, errs)
}

func TestRenderOmitsTimestamps(t *testing.T) {
	l := sampleListing()
	out := Render(l)
	require.Contains(t, out, "name: Corner Grocer")
	require.Contains(t, out, "hours.monday: 09:00 - 17:00")
	require.Contains(t, out, "hours.sunday: Closed")
	require.NotContains(t, out, "created")
	require.Empty(t, Render(nil))
}
