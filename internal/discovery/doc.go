// Package discovery finds Dial-A-Charmer devices with multicast DNS and
// advertises simulated ones.
//
// Once the device has joined a home network its web server announces itself
// as an "_http._tcp" service on host "dial-a-charmer.local". A Scanner
// browses for those announcements and reports each device once:
//
//	scanner := discovery.NewScanner()
//	devices, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, d := range devices {
//	    fmt.Println(d.Hostname, d.BaseURL())
//	}
//
// Hostnames with a suffix ("dial-a-charmer-sim.local") are accepted so that
// several devices, or a simulator next to real hardware, can be told apart.
//
// Discovery needs multicast on the local segment and UDP port 5353 open. A
// device in access-point mode does not advertise; it is always reachable at
// 192.168.4.1.
package discovery
