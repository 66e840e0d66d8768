// Package discovery finds and announces autodm preview servers over mDNS.
//
// Preview servers register the "_autodm._tcp" service with an "app=autodm" TXT
// record. Scanning browses that service type and keeps only entries carrying the
// marker and a usable address.
//
// # Usage Example
//
//	ad, err := discovery.Advertise(discovery.AdvertiseOptions{Port: 8480})
//	if err != nil {
//	    return err
//	}
//	defer ad.Shutdown()
//
//	instances, err := discovery.Scan(ctx, 5*time.Second)
//	for _, inst := range instances {
//	    fmt.Println(inst.Name, inst.BaseURL())
//	}
//
// # Network Requirements
//
// Multicast must be allowed on the interface and UDP port 5353 must not be blocked.
// Servers must be on the same network segment as the scanner.
package discovery
