package datetime_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cosmicpos/internal/datetime"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
)

func TestNormalizeTimezone(t *testing.T) {
	Convey("Given timezone abbreviations", t, func() {
		cases := map[string]string{
			"Mountain": "America/Denver",
			" EST ":    "America/New_York",
			"pdt":      "America/Los_Angeles",
			"AKST":     "America/Anchorage",
			"hst":      "Pacific/Honolulu",
			"gmt":      "GMT",
			"UTC":      "UTC",
			"bst":      "Europe/London",
			"CET":      "Europe/Paris",
			"jst":      "Asia/Tokyo",
			"aest":     "Australia/Sydney",
		}
		for in, want := range cases {
			So(datetime.NormalizeTimezone(in), ShouldEqual, want)
		}
	})

	Convey("Given an unknown name", t, func() {
		So(datetime.NormalizeTimezone("Europe/Berlin"), ShouldEqual, "Europe/Berlin")
		So(datetime.NormalizeTimezone("Nowhere"), ShouldEqual, "Nowhere")
	})
}

func TestParseInstant(t *testing.T) {
	Convey("Given a full date, time and abbreviation", t, func() {
		ts, err := datetime.ParseInstant("1971-11-17", "06:00:00", "Mountain")
		So(err, ShouldBeNil)

		Convey("Then the instant is local to that zone", func() {
			So(ts.Location().String(), ShouldEqual, "America/Denver")
			_, offset := ts.Zone()
			So(offset, ShouldEqual, -7*3600)
			So(ts.Equal(time.Date(1971, time.November, 17, 13, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})
	})

	Convey("Given no time of day", t, func() {
		ts, err := datetime.ParseInstant("1990-01-01", "", "")

		Convey("Then it defaults to noon UTC", func() {
			So(err, ShouldBeNil)
			So(ts.Equal(time.Date(1990, time.January, 1, 12, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(ts.Location(), ShouldEqual, time.UTC)
		})
	})

	Convey("Given partial times", t, func() {
		ts, err := datetime.ParseInstant("2000-02-29", "8", "UTC")
		So(err, ShouldBeNil)
		So(ts.Hour(), ShouldEqual, 8)
		So(ts.Minute(), ShouldEqual, 0)

		ts, err = datetime.ParseInstant("2000-02-29", "08:30", "UTC")
		So(err, ShouldBeNil)
		So(ts.Minute(), ShouldEqual, 30)
		So(ts.Second(), ShouldEqual, 0)
	})

	Convey("Given calendar values that do not exist", t, func() {
		bad := [][2]string{
			{"2021-02-29", "12:00"},
			{"2020-13-01", "12:00"},
			{"2020-00-10", "12:00"},
			{"2020-04-31", "12:00"},
			{"2020-01-01", "25:00"},
			{"2020-01-01", "12:60"},
			{"2020-01-01", "12:00:61"},
			{"2020-01-01", "-1"},
		}
		for _, b := range bad {
			_, err := datetime.ParseInstant(b[0], b[1], "UTC")
			So(err, ShouldWrap, spacetime.ErrInvalidTimestamp)
		}
	})

	Convey("Given malformed strings", t, func() {
		for _, d := range []string{"", "2020/01/01", "2020-01", "year-01-01", "0-01-01"} {
			_, err := datetime.ParseInstant(d, "", "UTC")
			So(err, ShouldWrap, spacetime.ErrInvalidTimestamp)
		}
		_, err := datetime.ParseInstant("2020-01-01", "1:2:3:4", "UTC")
		So(err, ShouldWrap, spacetime.ErrInvalidTimestamp)
		_, err = datetime.ParseInstant("2020-01-01", "noon", "UTC")
		So(err, ShouldWrap, spacetime.ErrInvalidTimestamp)
	})

	Convey("Given an unknown zone", t, func() {
		_, err := datetime.ParseInstant("2020-01-01", "", "Atlantis/Central")
		So(err, ShouldWrap, datetime.ErrUnknownTimezone)
	})

	Convey("Given the first instant of year 1", t, func() {
		Convey("When it is the zero time in UTC", func() {
			_, err := datetime.ParseInstant("0001-01-01", "00:00", "UTC")
			So(err, ShouldWrap, spacetime.ErrInvalidTimestamp)
			So(err.Error(), ShouldContainSubstring, "reserved")
		})

		Convey("When a later second of the same day is given", func() {
			ts, err := datetime.ParseInstant("0001-01-01", "00:00:01", "UTC")
			So(err, ShouldBeNil)
			So(ts.Year(), ShouldEqual, 1)
		})
	})

	Convey("Given a local time inside a DST gap", t, func() {
		ts, err := datetime.ParseInstant("2021-03-14", "02:30", "America/New_York")

		Convey("Then it is accepted and resolved by the zone rules", func() {
			So(err, ShouldBeNil)
			So(ts.IsZero(), ShouldBeFalse)
		})
	})
}
